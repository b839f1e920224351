package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/milkrun/internal/domain"
)

// Clock is a local time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Service is a named recurring flight pattern.
type Service struct {
	Name          string
	AircraftModel string
	Seats         int
	Origin        string
	Destination   string
	Stopover      string
	Days          []time.Weekday
	Departures    []Clock
	Duration      time.Duration
	// Zone is where the departure clock and "today" are read. Arrivals are
	// expressed in the destination airport's zone.
	Zone string
}

func (s Service) Validate() error {
	if s.Name == "" {
		return errors.New("service name is required")
	}
	if len(s.Days) == 0 || len(s.Departures) == 0 {
		return fmt.Errorf("service %s: needs at least one day and one departure", s.Name)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("service %s: duration must be positive", s.Name)
	}
	for _, c := range s.Departures {
		if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
			return fmt.Errorf("service %s: invalid departure %s", s.Name, c)
		}
	}
	for _, code := range []string{s.Origin, s.Destination} {
		if _, err := domain.LookupAirport(code); err != nil {
			return fmt.Errorf("service %s: %w", s.Name, err)
		}
	}
	if _, err := time.LoadLocation(s.Zone); err != nil {
		return fmt.Errorf("service %s: zone %q: %w", s.Name, s.Zone, err)
	}
	return nil
}

const (
	zoneAuckland = "Pacific/Auckland"
	zoneHobart   = "Australia/Hobart"

	aircraftSyberJet = "SyberJet SJ30i"
	aircraftCirrus   = "Cirrus SF50"
	aircraftHondaJet = "HondaJet Elite"
)

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// OutboundServices are the legs leaving the Dairy Flat base.
func OutboundServices() []Service {
	return []Service{
		{
			Name: "syberjet", AircraftModel: aircraftSyberJet, Seats: 5,
			Origin: "NZNE", Destination: "YMHB", Stopover: "NZRO",
			Days:       []time.Weekday{time.Friday},
			Departures: []Clock{{8, 30}},
			Duration:   3*time.Hour + 50*time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "cirrus-1", AircraftModel: aircraftCirrus, Seats: 4,
			Origin: "NZNE", Destination: "NZRO",
			Days:       weekdays,
			Departures: []Clock{{7, 45}, {17, 15}},
			Duration:   45 * time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "cirrus-2", AircraftModel: aircraftCirrus, Seats: 4,
			Origin: "NZNE", Destination: "NZGB",
			Days:       []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			Departures: []Clock{{10, 45}},
			Duration:   20 * time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "hondajet-1", AircraftModel: aircraftHondaJet, Seats: 5,
			Origin: "NZNE", Destination: "NZCI",
			Days:       []time.Weekday{time.Tuesday, time.Friday},
			Departures: []Clock{{14, 15}},
			Duration:   2*time.Hour + 15*time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "hondajet-2", AircraftModel: aircraftHondaJet, Seats: 5,
			Origin: "NZNE", Destination: "NZTL",
			Days:       []time.Weekday{time.Monday},
			Departures: []Clock{{16, 35}},
			Duration:   3*time.Hour + 10*time.Minute,
			Zone:       zoneAuckland,
		},
	}
}

// InboundServices are the return legs to Dairy Flat.
func InboundServices() []Service {
	return []Service{
		{
			Name: "syberjet-return", AircraftModel: aircraftSyberJet, Seats: 5,
			Origin: "YMHB", Destination: "NZNE",
			Days:       []time.Weekday{time.Sunday},
			Departures: []Clock{{14, 15}},
			Duration:   3*time.Hour + 50*time.Minute,
			Zone:       zoneHobart,
		},
		{
			Name: "cirrus-1-return", AircraftModel: aircraftCirrus, Seats: 4,
			Origin: "NZRO", Destination: "NZNE",
			Days:       weekdays,
			Departures: []Clock{{12, 0}, {20, 15}},
			Duration:   45 * time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "cirrus-2-return", AircraftModel: aircraftCirrus, Seats: 4,
			Origin: "NZGB", Destination: "NZNE",
			Days:       []time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
			Departures: []Clock{{10, 45}},
			Duration:   20 * time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: "hondajet-1-return", AircraftModel: aircraftHondaJet, Seats: 5,
			Origin: "NZCI", Destination: "NZNE",
			Days:       []time.Weekday{time.Wednesday, time.Saturday},
			Departures: []Clock{{10, 15}},
			Duration:   2*time.Hour + 15*time.Minute,
			Zone:       zoneAuckland,
		},
		{
			Name: TekapoReturn, AircraftModel: aircraftHondaJet, Seats: 5,
			Origin: "NZTL", Destination: "NZNE",
			Days:       []time.Weekday{time.Tuesday},
			Departures: []Clock{{17, 25}},
			Duration:   3*time.Hour + 10*time.Minute,
			Zone:       zoneAuckland,
		},
	}
}

// TekapoReturn never produced any rows in the first generation of this data
// set because its dates were read from an already drained list. Skip it to
// reproduce that data set.
const TekapoReturn = "hondajet-2-return"
