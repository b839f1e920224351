package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const BookingRefLength = 6

const bookingRefCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var ErrInvalidBookingRef = errors.New("invalid booking reference")

type Booking struct {
	ID               int64  `json:"id"`
	Ref              string `json:"booking_ref"`
	OutboundFlightID int64  `json:"outbound_flight_id"`
	InboundFlightID  int64  `json:"inbound_flight_id"`
}

func NewBooking(ref string, outboundFlightID, inboundFlightID int64) (Booking, error) {
	if err := ValidateBookingRef(ref); err != nil {
		return Booking{}, err
	}
	if outboundFlightID <= 0 || inboundFlightID <= 0 {
		return Booking{}, errors.New("booking needs an outbound and an inbound flight")
	}
	return Booking{Ref: ref, OutboundFlightID: outboundFlightID, InboundFlightID: inboundFlightID}, nil
}

// GenerateBookingRef returns a random reference drawn from an alphabet
// without the easily confused 0/O and 1/I.
func GenerateBookingRef() (string, error) {
	buf := make([]byte, BookingRefLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = bookingRefCharset[int(buf[i])%len(bookingRefCharset)]
	}
	return string(buf), nil
}

func ValidateBookingRef(ref string) error {
	if len(ref) != BookingRefLength {
		return fmt.Errorf("%w: %q must be %d characters", ErrInvalidBookingRef, ref, BookingRefLength)
	}
	for _, r := range ref {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("%w: %q", ErrInvalidBookingRef, ref)
		}
	}
	return nil
}

func (b Booking) String() string {
	return fmt.Sprintf("Booking(%s)", b.Ref)
}
