package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/milkrun/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// flightRow and the rows below mirror schema.sql, foreign keys included.
type flightRow struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Seats         int       `gorm:"column:seats;not null"`
	Origin        string    `gorm:"column:origin;type:varchar(200)"`
	Dest          string    `gorm:"column:dest;type:varchar(200)"`
	OriginCode    string    `gorm:"column:origin_code;type:varchar(4);not null;index:flight_route_leave_idx,priority:1"`
	DestCode      string    `gorm:"column:dest_code;type:varchar(4);not null;index:flight_route_leave_idx,priority:2"`
	LeaveDT       time.Time `gorm:"column:leave_dt;not null;index:flight_route_leave_idx,priority:3"`
	ArrivalDT     time.Time `gorm:"column:arrival_dt;not null"`
	Operator      string    `gorm:"column:operator;type:varchar(200);not null;default:'MilkRun Airways'"`
	AircraftModel string    `gorm:"column:aircraft_model;type:varchar(200)"`
	Stopover      *string   `gorm:"column:stopover;type:varchar(200)"`
}

func (flightRow) TableName() string { return "flight" }

type bookingRow struct {
	ID               int64  `gorm:"column:id;primaryKey;autoIncrement"`
	BookingRef       string `gorm:"column:booking_ref;type:varchar(6);not null;uniqueIndex"`
	OutboundFlightID int64  `gorm:"column:outbound_flight_id"`
	InboundFlightID  int64  `gorm:"column:inbound_flight_id"`

	Outbound *flightRow `gorm:"foreignKey:OutboundFlightID;references:ID;constraint:OnDelete:RESTRICT"`
	Inbound  *flightRow `gorm:"foreignKey:InboundFlightID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (bookingRow) TableName() string { return "booking" }

type customerRow struct {
	ID                 int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName          string `gorm:"column:first_name;type:varchar(200)"`
	LastName           string `gorm:"column:last_name;type:varchar(200)"`
	CustomerBookingRef string `gorm:"column:customer_booking_ref;type:varchar(6);index"`

	Booking *bookingRow `gorm:"foreignKey:CustomerBookingRef;references:BookingRef;constraint:OnDelete:RESTRICT"`
}

func (customerRow) TableName() string { return "customer" }

// OpenSQLite opens (or creates) a sqlite database and migrates the schema.
// Foreign keys are enforced on every pooled connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(&flightRow{}, &bookingRow{}, &customerRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// sqlite keeps timestamps as text, so rows are stored in UTC to keep
// lexical and chronological order the same.
func toFlightRow(f domain.Flight) flightRow {
	return flightRow{
		ID:            f.ID,
		Seats:         f.Seats,
		Origin:        f.Origin,
		Dest:          f.Destination,
		OriginCode:    f.OriginCode,
		DestCode:      f.DestinationCode,
		LeaveDT:       f.LeaveAt.UTC(),
		ArrivalDT:     f.ArriveAt.UTC(),
		Operator:      f.Operator,
		AircraftModel: f.AircraftModel,
		Stopover:      f.Stopover,
	}
}

func (r flightRow) toDomain() domain.Flight {
	return domain.Flight{
		ID:              r.ID,
		Seats:           r.Seats,
		Origin:          r.Origin,
		Destination:     r.Dest,
		OriginCode:      r.OriginCode,
		DestinationCode: r.DestCode,
		LeaveAt:         r.LeaveDT,
		ArriveAt:        r.ArrivalDT,
		Operator:        r.Operator,
		AircraftModel:   r.AircraftModel,
		Stopover:        r.Stopover,
	}
}
