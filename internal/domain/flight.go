package domain

import (
	"errors"
	"fmt"
	"time"
)

const DefaultOperator = "MilkRun Airways"

type Flight struct {
	ID              int64     `json:"id"`
	Seats           int       `json:"seats"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"dest"`
	OriginCode      string    `json:"origin_code"`
	DestinationCode string    `json:"dest_code"`
	LeaveAt         time.Time `json:"leave_dt"`
	ArriveAt        time.Time `json:"arrival_dt"`
	Operator        string    `json:"operator"`
	AircraftModel   string    `json:"aircraft_model"`
	Stopover        *string   `json:"stopover,omitempty"`
}

// FlightParams is the code+time tuple a Flight is built from.
type FlightParams struct {
	Seats           int
	OriginCode      string
	DestinationCode string
	LeaveAt         time.Time
	ArriveAt        time.Time
	// StopoverCode is optional; empty means a direct flight.
	StopoverCode  string
	AircraftModel string
	Operator      string
}

// NewFlight derives the location names from the airport table.
func NewFlight(p FlightParams) (Flight, error) {
	origin, err := LookupAirport(p.OriginCode)
	if err != nil {
		return Flight{}, fmt.Errorf("origin: %w", err)
	}
	dest, err := LookupAirport(p.DestinationCode)
	if err != nil {
		return Flight{}, fmt.Errorf("destination: %w", err)
	}
	if p.Seats <= 0 {
		return Flight{}, errors.New("seats must be positive")
	}
	if !p.ArriveAt.After(p.LeaveAt) {
		return Flight{}, errors.New("arrival must be after departure")
	}

	var stopover *string
	if p.StopoverCode != "" {
		stop, err := LookupAirport(p.StopoverCode)
		if err != nil {
			return Flight{}, fmt.Errorf("stopover: %w", err)
		}
		stopover = &stop.Location
	}

	operator := p.Operator
	if operator == "" {
		operator = DefaultOperator
	}

	return Flight{
		Seats:           p.Seats,
		Origin:          origin.Location,
		Destination:     dest.Location,
		OriginCode:      origin.Code,
		DestinationCode: dest.Code,
		LeaveAt:         p.LeaveAt,
		ArriveAt:        p.ArriveAt,
		Operator:        operator,
		AircraftModel:   p.AircraftModel,
		Stopover:        stopover,
	}, nil
}

func (f Flight) Duration() time.Duration {
	return f.ArriveAt.Sub(f.LeaveAt)
}

func (f Flight) String() string {
	return fmt.Sprintf("Flight(id=%d seats=%d %s->%s out=%s in=%s)",
		f.ID, f.Seats, f.OriginCode, f.DestinationCode,
		f.LeaveAt.Format(time.RFC3339), f.ArriveAt.Format(time.RFC3339))
}
