package seed

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/milkrun/config"
	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/Domenick1991/milkrun/internal/kafka"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate() (*schedule.Timetable, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Timetable), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) InsertBatch(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListByRoute(ctx context.Context, originCode, destCode string) ([]domain.Flight, error) {
	args := m.Called(ctx, originCode, destCode)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ReplaceAll(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func testTimetable() *schedule.Timetable {
	leave := time.Date(2023, time.January, 6, 8, 30, 0, 0, time.UTC)
	f := domain.Flight{OriginCode: "NZNE", DestinationCode: "YMHB", LeaveAt: leave, ArriveAt: leave.Add(time.Hour)}
	r := domain.Flight{OriginCode: "YMHB", DestinationCode: "NZNE", LeaveAt: leave.AddDate(0, 0, 2), ArriveAt: leave.AddDate(0, 0, 2).Add(time.Hour)}
	return &schedule.Timetable{Outbound: []domain.Flight{f, f}, Inbound: []domain.Flight{r}}
}

func TestSeedService_Seed_Success(t *testing.T) {
	gen := &MockGenerator{}
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	seededAt := time.Date(2023, time.January, 1, 9, 0, 0, 0, time.UTC)

	service := NewSeedService(gen, repo, zap.NewNop().Sugar(),
		WithCache(cache),
		WithProducer(producer, "milkrun.schedule"),
		WithReset(true),
		WithClock(func() time.Time { return seededAt }),
	)

	ctx := context.Background()
	gen.On("Generate").Return(testTimetable(), nil).Once()
	repo.On("ReplaceAll", ctx, mock.MatchedBy(func(flights []domain.Flight) bool {
		return len(flights) == 3 && flights[2].OriginCode == "YMHB"
	})).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "milkrun.schedule", mock.AnythingOfType("string"), mock.MatchedBy(func(e kafka.ScheduleEvent) bool {
		return e.Type == kafka.EventScheduleSeeded && e.Outbound == 2 && e.Inbound == 1 && e.Year == 2023 && e.SeededAt.Equal(seededAt)
	})).Return(nil).Once()

	report, err := service.Seed(ctx)

	require.NoError(t, err)
	assert.True(t, report.Persisted)
	assert.Equal(t, schedule.Counts{Outbound: 2, Inbound: 1, Total: 3}, report.Counts)
	assert.Equal(t, 2023, report.Year)

	gen.AssertExpectations(t)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestSeedService_Seed_WithoutReset(t *testing.T) {
	gen := &MockGenerator{}
	repo := &MockFlightRepository{}
	service := NewSeedService(gen, repo, zap.NewNop().Sugar())

	ctx := context.Background()
	gen.On("Generate").Return(testTimetable(), nil).Once()
	repo.On("InsertBatch", ctx, mock.Anything).Return(nil).Once()

	_, err := service.Seed(ctx)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestSeedService_Seed_SideEffectFailuresAreNotFatal(t *testing.T) {
	gen := &MockGenerator{}
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := NewSeedService(gen, repo, zap.NewNop().Sugar(), WithCache(cache), WithProducer(producer, "topic"))

	ctx := context.Background()
	gen.On("Generate").Return(testTimetable(), nil).Once()
	repo.On("InsertBatch", ctx, mock.Anything).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()
	producer.On("Publish", ctx, "topic", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	report, err := service.Seed(ctx)

	require.NoError(t, err)
	assert.True(t, report.Persisted)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestSeedService_Seed_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("generator fails", func(t *testing.T) {
		gen := &MockGenerator{}
		repo := &MockFlightRepository{}
		gen.On("Generate").Return(nil, errors.New("unknown zone")).Once()

		_, err := NewSeedService(gen, repo, zap.NewNop().Sugar()).Seed(ctx)

		assert.ErrorContains(t, err, "unknown zone")
		repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	})

	t.Run("reset fails", func(t *testing.T) {
		gen := &MockGenerator{}
		repo := &MockFlightRepository{}
		gen.On("Generate").Return(testTimetable(), nil).Once()
		repo.On("ReplaceAll", ctx, mock.Anything).Return(errors.New("locked")).Once()

		_, err := NewSeedService(gen, repo, zap.NewNop().Sugar(), WithReset(true)).Seed(ctx)

		assert.ErrorContains(t, err, "locked")
		repo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	})

	t.Run("insert fails", func(t *testing.T) {
		gen := &MockGenerator{}
		repo := &MockFlightRepository{}
		producer := &MockProducer{}
		gen.On("Generate").Return(testTimetable(), nil).Once()
		repo.On("InsertBatch", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := NewSeedService(gen, repo, zap.NewNop().Sugar(), WithProducer(producer, "topic")).Seed(ctx)

		assert.ErrorContains(t, err, "disk full")
		producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no repository", func(t *testing.T) {
		_, err := NewSeedService(&MockGenerator{}, nil, zap.NewNop().Sugar()).Seed(ctx)
		assert.Error(t, err)
	})
}

func TestSeedService_Seed_FailedResetKeepsPreviousTimetable(t *testing.T) {
	ctx := context.Background()
	store, err := repository.Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "seed.db"),
	}, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gen := &MockGenerator{}
	gen.On("Generate").Return(testTimetable(), nil).Once()
	_, err = NewSeedService(gen, store.Flights, zap.NewNop().Sugar(), WithReset(true)).Seed(ctx)
	require.NoError(t, err)

	broken := testTimetable()
	broken.Outbound[0].ID, broken.Outbound[1].ID = 99, 99
	gen.On("Generate").Return(broken, nil).Once()

	report, err := NewSeedService(gen, store.Flights, zap.NewNop().Sugar(), WithReset(true)).Seed(ctx)

	assert.Error(t, err)
	assert.Nil(t, report)
	kept, err := store.Flights.List(ctx)
	require.NoError(t, err)
	assert.Len(t, kept, 3)
}

func TestSeedService_DryRun(t *testing.T) {
	gen := &MockGenerator{}
	gen.On("Generate").Return(testTimetable(), nil).Once()

	report, err := NewSeedService(gen, nil, zap.NewNop().Sugar()).DryRun()

	require.NoError(t, err)
	assert.False(t, report.Persisted)
	assert.Equal(t, 3, report.Counts.Total)
}

func TestSeedService_DryRun_RealGenerator(t *testing.T) {
	gen := schedule.NewGenerator(schedule.WithStartDate(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))

	report, err := NewSeedService(gen, nil, zap.NewNop().Sugar()).DryRun()

	require.NoError(t, err)
	assert.Equal(t, 1769, report.Counts.Total)
	assert.Equal(t, 2023, report.Year)
}
