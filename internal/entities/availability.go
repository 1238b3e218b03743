package entities

import "github.com/google/uuid"

// AvailableSlot is a template slot that still has mechanic capacity on the
// requested date. Label carries the display form, e.g. "9:00 AM - 9:30 AM".
type AvailableSlot struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	DayOfWeek int       `json:"day_of_week"`
	Label     string    `json:"formatted_label"`
}

type AvailabilityResponse struct {
	GarageID string          `json:"garage_id"`
	Date     string          `json:"date"`
	Slots    []AvailableSlot `json:"slots"`
}
