package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Customer struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BookingRef string `json:"customer_booking_ref"`
}

func NewCustomer(firstName, lastName, bookingRef string) (Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Customer{}, errors.New("first and last name are required")
	}
	if err := ValidateBookingRef(bookingRef); err != nil {
		return Customer{}, err
	}
	return Customer{FirstName: firstName, LastName: lastName, BookingRef: bookingRef}, nil
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer(%s %s, %s)", c.FirstName, c.LastName, c.BookingRef)
}
