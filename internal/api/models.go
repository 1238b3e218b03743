package api

// Owner schedule management
type CreateTimeSlotRequest struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available"`
}

type UpdateTimeSlotRequest struct {
	IsAvailable bool `json:"is_available"`
}

// Owner roster management
type CreateMechanicRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type UpdateMechanicRequest struct {
	Status string `json:"status"`
}

type AssignMechanicRequest struct {
	MechanicID string `json:"mechanic_id"`
}
