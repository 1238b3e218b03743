package entities

type BookingEmailData struct {
	CustomerName  string
	BookingCode   string
	GarageName    string
	VehicleModel  string
	DateFormatted string
	SlotLabel     string
	Status        string
	CurrentYear   int
}
