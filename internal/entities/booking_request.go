package entities

import "time"

type BookingRequest struct {
	GarageID      string `json:"garage_id"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	VehicleModel  string `json:"vehicle_model"`
	ServiceNotes  string `json:"service_notes"`
}

type BookingResponse struct {
	Code             string    `json:"code"`
	GarageID         string    `json:"garage_id"`
	BookingDate      string    `json:"booking_date"`
	BookingTime      string    `json:"booking_time"`
	Status           string    `json:"status"`
	AssignedMechanic string    `json:"assigned_mechanic,omitempty"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	VehicleModel     string    `json:"vehicle_model,omitempty"`
	ServiceNotes     string    `json:"service_notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Bookings []BookingResponse `json:"bookings"`
}
