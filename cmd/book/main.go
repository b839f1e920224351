package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Domenick1991/milkrun/config"
	"github.com/Domenick1991/milkrun/internal/logging"
	"github.com/Domenick1991/milkrun/internal/repository"
	"github.com/Domenick1991/milkrun/internal/service/booking"
)

// book pairs two flights into a booking and attaches passengers, or prints
// an existing booking when -ref is given alone.
func main() {
	outboundID := flag.Int64("out", 0, "outbound flight id")
	inboundID := flag.Int64("in", 0, "inbound flight id")
	ref := flag.String("ref", "", "existing booking reference")
	passengers := flag.String("passengers", "", "comma separated \"First Last\" names")
	flag.Parse()

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Must(cfg.App.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, cfg.Seed.BatchSize)
	if err != nil {
		logger.Fatalw("open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer store.Close()

	svc := booking.NewBookingService(store.Flights, store.Bookings, store.Customers, logger)

	if *ref == "" {
		if *outboundID == 0 || *inboundID == 0 {
			logger.Fatal("either -ref or both -out and -in are required")
		}
		b, err := svc.CreateBooking(ctx, *outboundID, *inboundID)
		if err != nil {
			logger.Fatalw("create booking", "error", err)
		}
		*ref = b.Ref
	}

	for _, name := range strings.Split(*passengers, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		first, last, _ := strings.Cut(name, " ")
		if _, err := svc.AddCustomer(ctx, *ref, first, last); err != nil {
			logger.Fatalw("add passenger", "name", name, "error", err)
		}
	}

	details, err := svc.GetBooking(ctx, *ref)
	if err != nil {
		logger.Fatalw("load booking", "ref", *ref, "error", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(details); err != nil {
		logger.Fatalw("print booking", "error", err)
	}
}
