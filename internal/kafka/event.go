package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const EventScheduleSeeded = "schedule_seeded"

// ScheduleEvent announces that the flight table was regenerated.
type ScheduleEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Year     int       `json:"year"`
	Outbound int       `json:"outbound"`
	Inbound  int       `json:"inbound"`
	SeededAt time.Time `json:"seeded_at"`
}

func NewScheduleSeeded(year, outbound, inbound int, at time.Time) ScheduleEvent {
	return ScheduleEvent{
		ID:       uuid.NewString(),
		Type:     EventScheduleSeeded,
		Year:     year,
		Outbound: outbound,
		Inbound:  inbound,
		SeededAt: at,
	}
}

func DecodeScheduleEvent(data []byte) (ScheduleEvent, error) {
	var event ScheduleEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return ScheduleEvent{}, fmt.Errorf("decode schedule event: %w", err)
	}
	if event.Type == "" {
		return ScheduleEvent{}, fmt.Errorf("decode schedule event: missing type")
	}
	return event, nil
}
