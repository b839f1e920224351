package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"github.com/Domenick1991/milkrun/config"
	"github.com/Domenick1991/milkrun/internal/cache"
	"github.com/Domenick1991/milkrun/internal/domain"
	"github.com/Domenick1991/milkrun/internal/logging"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/service/flights"
)

func main() {
	origin := flag.String("from-airport", "NZNE", "origin ICAO code")
	dest := flag.String("to-airport", "NZRO", "destination ICAO code")
	fromDate := flag.String("from", "", "first departure day, YYYY-MM-DD")
	toDate := flag.String("to", "", "day after the last departure, YYYY-MM-DD")
	listAirports := flag.Bool("airports", false, "print the served airports and exit")
	flag.Parse()

	if *listAirports {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLOCATION\tZONE")
		for _, a := range domain.Airports() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Code, a.Location, a.Zone)
		}
		w.Flush()
		return
	}

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Must(cfg.App.Env)
	defer logger.Sync()

	query := flights.RouteQuery{OriginCode: *origin, DestinationCode: *dest}
	if query.From, err = parseDay(*fromDate); err != nil {
		logger.Fatalw("invalid -from", "error", err)
	}
	if query.To, err = parseDay(*toDate); err != nil {
		logger.Fatalw("invalid -to", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, cfg.Seed.BatchSize)
	if err != nil {
		logger.Fatalw("open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close()

	var flightCache flights.FlightCache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		flightCache = redisCache
	}

	route, err := flights.NewFlightService(store.Flights, flightCache, logger).Route(ctx, query)
	if err != nil {
		logger.Fatalw("load route", "error", err)
	}

	from, _ := domain.Location(query.OriginCode)
	to, _ := domain.Location(query.DestinationCode)
	fmt.Printf("%s to %s, %d flights\n\n", from, to, len(route))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDEPARTS\tARRIVES\tAIRCRAFT\tSEATS\tVIA")
	for _, f := range route {
		via := "-"
		if f.Stopover != nil {
			via = *f.Stopover
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", f.ID,
			localTime(f.OriginCode, f.LeaveAt), localTime(f.DestinationCode, f.ArriveAt),
			f.AircraftModel, f.Seats, via)
	}
	w.Flush()
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

// localTime formats t on the wall clock of the given airport.
func localTime(code string, t time.Time) string {
	const layout = "Mon 02 Jan 15:04 MST"
	a, err := domain.LookupAirport(code)
	if err != nil {
		return t.Format(layout)
	}
	loc, err := time.LoadLocation(a.Zone)
	if err != nil {
		return t.Format(layout)
	}
	return t.In(loc).Format(layout)
}
