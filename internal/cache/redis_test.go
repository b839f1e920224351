package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlights() []domain.Flight {
	leave := time.Date(2023, time.January, 6, 8, 30, 0, 0, time.UTC)
	return []domain.Flight{{
		ID:              1,
		Seats:           5,
		Origin:          "Dairy Flat",
		Destination:     "Hobart",
		OriginCode:      "NZNE",
		DestinationCode: "YMHB",
		LeaveAt:         leave,
		ArriveAt:        leave.Add(3*time.Hour + 50*time.Minute),
		Operator:        domain.DefaultOperator,
		AircraftModel:   "SyberJet SJ30i",
	}}
}

func TestRedisCache_GetFlights_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, time.Minute)

	mock.ExpectGet(flightsKey).RedisNil()

	flights, err := c.GetFlights(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, flights)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetFlights_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, time.Minute)

	payload, err := json.Marshal(testFlights())
	require.NoError(t, err)
	mock.ExpectGet(flightsKey).SetVal(string(payload))

	flights, err := c.GetFlights(context.Background())
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "YMHB", flights[0].DestinationCode)
	assert.True(t, flights[0].LeaveAt.Equal(testFlights()[0].LeaveAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetFlights_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, time.Minute)

	mock.ExpectGet(flightsKey).SetErr(errors.New("connection refused"))
	_, err := c.GetFlights(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectGet(flightsKey).SetVal("not json")
	_, err = c.GetFlights(context.Background())
	assert.ErrorContains(t, err, "decode cached flights")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetFlights(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, 5*time.Minute)

	payload, err := json.Marshal(testFlights())
	require.NoError(t, err)
	mock.ExpectSet(flightsKey, payload, 5*time.Minute).SetVal("OK")

	assert.NoError(t, c.SetFlights(context.Background(), testFlights()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_InvalidateFlights(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheWithClient(db, time.Minute)

	mock.ExpectDel(flightsKey).SetVal(1)

	assert.NoError(t, c.InvalidateFlights(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
