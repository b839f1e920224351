package schedule

import (
	"testing"
	"time"

	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan2023 = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func assertSameClock(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.Equal(t, want.Format(time.RFC3339), got.Format(time.RFC3339))
}

func countBy(flights []domain.Flight, origin, dest string) int {
	n := 0
	for _, f := range flights {
		if f.OriginCode == origin && f.DestinationCode == dest {
			n++
		}
	}
	return n
}

func TestGenerator_FullYear2023(t *testing.T) {
	tt, err := NewGenerator(WithStartDate(jan2023)).Generate()
	require.NoError(t, err)

	counts := tt.Counts()
	assert.Equal(t, 884, counts.Outbound)
	assert.Equal(t, 885, counts.Inbound)
	assert.Equal(t, 1769, counts.Total)
	assert.Len(t, tt.All(), counts.Total)

	assert.Equal(t, 52, countBy(tt.Outbound, "NZNE", "YMHB"))
	assert.Equal(t, 520, countBy(tt.Outbound, "NZNE", "NZRO"))
	assert.Equal(t, 156, countBy(tt.Outbound, "NZNE", "NZGB"))
	assert.Equal(t, 104, countBy(tt.Outbound, "NZNE", "NZCI"))
	assert.Equal(t, 52, countBy(tt.Outbound, "NZNE", "NZTL"))

	assert.Equal(t, 53, countBy(tt.Inbound, "YMHB", "NZNE"))
	assert.Equal(t, 520, countBy(tt.Inbound, "NZRO", "NZNE"))
	assert.Equal(t, 156, countBy(tt.Inbound, "NZGB", "NZNE"))
	assert.Equal(t, 104, countBy(tt.Inbound, "NZCI", "NZNE"))
	assert.Equal(t, 52, countBy(tt.Inbound, "NZTL", "NZNE"))
}

func TestGenerator_WithoutTekapoReturn(t *testing.T) {
	tt, err := NewGenerator(WithStartDate(jan2023), WithoutServices(TekapoReturn)).Generate()
	require.NoError(t, err)

	assert.Equal(t, 884, tt.Counts().Outbound)
	assert.Equal(t, 833, tt.Counts().Inbound)
	assert.Zero(t, countBy(tt.Inbound, "NZTL", "NZNE"))
}

func TestGenerator_SyberJetLegs(t *testing.T) {
	auckland := mustZone(t, "Pacific/Auckland")
	hobart := mustZone(t, "Australia/Hobart")

	tt, err := NewGenerator(WithStartDate(jan2023)).Generate()
	require.NoError(t, err)

	out := tt.Outbound[0]
	assert.Equal(t, "SyberJet SJ30i", out.AircraftModel)
	assert.Equal(t, 5, out.Seats)
	assertSameClock(t, time.Date(2023, time.January, 6, 8, 30, 0, 0, auckland), out.LeaveAt)
	assert.Equal(t, hobart.String(), out.ArriveAt.Location().String())
	assert.Equal(t, 3*time.Hour+50*time.Minute, out.Duration())
	require.NotNil(t, out.Stopover)
	assert.Equal(t, "Rotorua", *out.Stopover)
	assert.Equal(t, domain.DefaultOperator, out.Operator)

	// round trip through the destination zone keeps the instant
	back := out.ArriveAt.In(auckland).In(hobart)
	assert.True(t, back.Equal(out.ArriveAt))
	assert.True(t, out.LeaveAt.In(hobart).In(auckland).Equal(out.LeaveAt))

	ret := tt.Inbound[0]
	assert.Equal(t, "YMHB", ret.OriginCode)
	assertSameClock(t, time.Date(2023, time.January, 1, 14, 15, 0, 0, hobart), ret.LeaveAt)
	assert.Equal(t, auckland.String(), ret.ArriveAt.Location().String())
	assert.Nil(t, ret.Stopover)
}

func TestGenerator_TwoDeparturesPerDay(t *testing.T) {
	auckland := mustZone(t, "Pacific/Auckland")
	g := NewGenerator(WithStartDate(jan2023))

	var cirrus Service
	for _, s := range OutboundServices() {
		if s.Name == "cirrus-1" {
			cirrus = s
		}
	}
	flights, err := g.Expand(cirrus)
	require.NoError(t, err)
	require.Len(t, flights, 520)

	// Monday group first, both departures of a date side by side
	assertSameClock(t, time.Date(2023, time.January, 2, 7, 45, 0, 0, auckland), flights[0].LeaveAt)
	assertSameClock(t, time.Date(2023, time.January, 2, 17, 15, 0, 0, auckland), flights[1].LeaveAt)
	assertSameClock(t, time.Date(2023, time.January, 9, 7, 45, 0, 0, auckland), flights[2].LeaveAt)
	assert.Equal(t, time.Monday, flights[103].LeaveAt.Weekday())
	assert.Equal(t, time.Tuesday, flights[104].LeaveAt.Weekday())
}

func TestGenerator_KeepsLocalTimeAcrossDST(t *testing.T) {
	tt, err := NewGenerator(WithStartDate(jan2023)).Generate()
	require.NoError(t, err)

	for _, f := range tt.Outbound {
		if f.DestinationCode != "NZTL" {
			continue
		}
		assert.Equal(t, 16, f.LeaveAt.Hour())
		assert.Equal(t, 35, f.LeaveAt.Minute())
		assert.Equal(t, 3*time.Hour+10*time.Minute, f.Duration())
	}
}

func TestGenerator_UsesClockWhenNoStartDate(t *testing.T) {
	// 2023-12-20 22:00 UTC is already Dec 21 in Auckland
	now := time.Date(2023, time.December, 20, 22, 0, 0, 0, time.UTC)
	g := NewGenerator(WithClock(func() time.Time { return now }))

	tt, err := g.Generate()
	require.NoError(t, err)

	for _, f := range tt.All() {
		assert.Equal(t, 2023, f.LeaveAt.Year())
		assert.False(t, f.LeaveAt.Before(time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)))
	}
	// Fridays Dec 22 and 29 in Auckland
	assert.Equal(t, 2, countBy(tt.Outbound, "NZNE", "YMHB"))
	// Sundays Dec 24 and 31 in Hobart
	assert.Equal(t, 2, countBy(tt.Inbound, "YMHB", "NZNE"))
}

func TestGenerator_InvalidService(t *testing.T) {
	bad := Service{
		Name: "ghost", AircraftModel: "Cessna", Seats: 2,
		Origin: "NZNE", Destination: "KJFK",
		Days: []time.Weekday{time.Monday}, Departures: []Clock{{9, 0}},
		Duration: time.Hour, Zone: "Pacific/Auckland",
	}
	_, err := NewGenerator(WithStartDate(jan2023), WithServices([]Service{bad}, nil)).Generate()
	assert.ErrorIs(t, err, domain.ErrUnknownAirport)

	bad.Destination = "NZRO"
	bad.Zone = "Mars/Olympus"
	_, err = NewGenerator(WithStartDate(jan2023), WithServices(nil, []Service{bad})).Generate()
	assert.Error(t, err)
}

func TestCatalog_Valid(t *testing.T) {
	names := make(map[string]struct{})
	for _, s := range append(OutboundServices(), InboundServices()...) {
		assert.NoError(t, s.Validate(), s.Name)
		_, dup := names[s.Name]
		assert.False(t, dup, s.Name)
		names[s.Name] = struct{}{}
	}
	assert.Contains(t, names, TekapoReturn)
}
