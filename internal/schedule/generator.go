package schedule

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/Domenick1991/milkrun/internal/domain"
)

type Timetable struct {
	Outbound []domain.Flight
	Inbound  []domain.Flight
}

type Counts struct {
	Outbound int
	Inbound  int
	Total    int
}

func (t *Timetable) Counts() Counts {
	return Counts{
		Outbound: len(t.Outbound),
		Inbound:  len(t.Inbound),
		Total:    len(t.Outbound) + len(t.Inbound),
	}
}

// All returns outbound flights followed by inbound flights.
func (t *Timetable) All() []domain.Flight {
	all := make([]domain.Flight, 0, len(t.Outbound)+len(t.Inbound))
	all = append(all, t.Outbound...)
	return append(all, t.Inbound...)
}

type Generator struct {
	outbound  []Service
	inbound   []Service
	startDate time.Time
	now       func() time.Time
	skip      map[string]struct{}
}

type Option func(*Generator)

// WithStartDate pins the first calendar day of the window. Only the date
// part is used; it is read in each service's own zone.
func WithStartDate(d time.Time) Option {
	return func(g *Generator) {
		g.startDate = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithoutServices(names ...string) Option {
	return func(g *Generator) {
		for _, n := range names {
			g.skip[n] = struct{}{}
		}
	}
}

func WithServices(outbound, inbound []Service) Option {
	return func(g *Generator) {
		g.outbound = outbound
		g.inbound = inbound
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		outbound: OutboundServices(),
		inbound:  InboundServices(),
		now:      time.Now,
		skip:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate expands every service into flights for the rest of the year.
func (g *Generator) Generate() (*Timetable, error) {
	outbound, err := g.expandAll(g.outbound)
	if err != nil {
		return nil, err
	}
	inbound, err := g.expandAll(g.inbound)
	if err != nil {
		return nil, err
	}
	return &Timetable{Outbound: outbound, Inbound: inbound}, nil
}

func (g *Generator) expandAll(services []Service) ([]domain.Flight, error) {
	var flights []domain.Flight
	for _, s := range services {
		if _, skipped := g.skip[s.Name]; skipped {
			continue
		}
		expanded, err := g.Expand(s)
		if err != nil {
			return nil, err
		}
		flights = append(flights, expanded...)
	}
	return flights, nil
}

// Expand produces the flights of a single service, grouped by weekday in
// the order the service lists them.
func (g *Generator) Expand(s Service) ([]domain.Flight, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(s.Zone)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", s.Name, err)
	}
	dest, err := domain.LookupAirport(s.Destination)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", s.Name, err)
	}
	destLoc, err := time.LoadLocation(dest.Zone)
	if err != nil {
		return nil, fmt.Errorf("service %s: destination zone: %w", s.Name, err)
	}

	start := g.startIn(loc)
	var flights []domain.Flight
	for _, day := range s.Days {
		for _, date := range WeekdayDates(start, day) {
			for _, dep := range s.Departures {
				leave := time.Date(date.Year(), date.Month(), date.Day(), dep.Hour, dep.Minute, 0, 0, loc)
				f, err := domain.NewFlight(domain.FlightParams{
					Seats:           s.Seats,
					OriginCode:      s.Origin,
					DestinationCode: s.Destination,
					LeaveAt:         leave,
					ArriveAt:        leave.Add(s.Duration).In(destLoc),
					StopoverCode:    s.Stopover,
					AircraftModel:   s.AircraftModel,
				})
				if err != nil {
					return nil, fmt.Errorf("service %s: %w", s.Name, err)
				}
				flights = append(flights, f)
			}
		}
	}
	return flights, nil
}

// startIn is midnight of the window's first day in loc.
func (g *Generator) startIn(loc *time.Location) time.Time {
	d := g.startDate
	if d.IsZero() {
		d = g.now().In(loc)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
