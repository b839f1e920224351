package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownAirport = errors.New("unknown airport code")

// Airport is a field served by the network.
type Airport struct {
	Code     string
	Location string
	Zone     string
}

var airports = map[string]Airport{
	"NZNE": {Code: "NZNE", Location: "Dairy Flat", Zone: "Pacific/Auckland"},
	"YMHB": {Code: "YMHB", Location: "Hobart", Zone: "Australia/Hobart"},
	"NZRO": {Code: "NZRO", Location: "Rotorua", Zone: "Pacific/Auckland"},
	"NZCI": {Code: "NZCI", Location: "Chatham Islands", Zone: "Pacific/Chatham"},
	"NZGB": {Code: "NZGB", Location: "Great Barrier Island", Zone: "Pacific/Auckland"},
	"NZTL": {Code: "NZTL", Location: "Lake Tekapo", Zone: "Pacific/Auckland"},
}

// LookupAirport resolves an ICAO code. Codes are matched case-insensitively.
func LookupAirport(code string) (Airport, error) {
	a, ok := airports[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Airport{}, fmt.Errorf("%w: %q", ErrUnknownAirport, code)
	}
	return a, nil
}

func Location(code string) (string, error) {
	a, err := LookupAirport(code)
	if err != nil {
		return "", err
	}
	return a.Location, nil
}

// Airports returns the table sorted by code.
func Airports() []Airport {
	list := make([]Airport, 0, len(airports))
	for _, a := range airports {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list
}
