package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"revonn/internal/config"
	"revonn/internal/entities"
	"revonn/internal/utils"
)

type SenderService struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewSenderService(cfg *config.Config, log zerolog.Logger) *SenderService {
	return &SenderService{cfg: cfg, log: log}
}

// NotifyBookingStatus sends the booking status email and SMS. Delivery is
// fire-and-forget: failures are logged, never surfaced to the booking flow.
func (s *SenderService) NotifyBookingStatus(booking entities.BookingResponse, garageName, status string) {
	go s.sendBookingEmail(booking, garageName, status)
	if booking.CustomerPhone != "" {
		go s.sendBookingSMS(booking, garageName, status)
	}
}

func (s *SenderService) sendBookingEmail(booking entities.BookingResponse, garageName, status string) {
	emailData := entities.BookingEmailData{
		CustomerName:  booking.CustomerName,
		BookingCode:   booking.Code,
		GarageName:    garageName,
		VehicleModel:  booking.VehicleModel,
		DateFormatted: formatBookingDate(booking.BookingDate),
		SlotLabel:     utils.FormatClock(booking.BookingTime),
		Status:        status,
		CurrentYear:   time.Now().Year(),
	}

	subject := fmt.Sprintf("Your Revonn booking is %s - Code: %s", status, booking.Code)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Vehicle: %s\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Thank you for choosing Revonn.",
		emailData.CustomerName, garageName, status,
		emailData.BookingCode, emailData.VehicleModel,
		emailData.DateFormatted, emailData.SlotLabel,
	)

	htmlBody := ""
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		s.log.Warn().Err(err).Str("template", tmplPath).Msg("could not parse booking email template")
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			s.log.Warn().Err(err).Str("code", booking.Code).Msg("could not render booking email template")
		} else {
			htmlBody = buf.String()
		}
	}

	if err := s.sendEmailWithSendGrid(booking.CustomerEmail, booking.CustomerName, subject, plainBody, htmlBody); err != nil {
		s.log.Error().Err(err).Str("code", booking.Code).Msg("failed to send booking email")
	}
}

func (s *SenderService) sendBookingSMS(booking entities.BookingResponse, garageName, status string) {
	message := fmt.Sprintf("Revonn: your booking %s at %s is %s.\n%s at %s.\nMore details in your email.",
		booking.Code, garageName, status,
		formatBookingDate(booking.BookingDate), utils.FormatClock(booking.BookingTime),
	)
	if err := s.sendSMS(booking.CustomerPhone, message); err != nil {
		s.log.Error().Err(err).Str("code", booking.Code).Msg("failed to send booking SMS")
	}
}

func formatBookingDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon, 02 Jan 2006")
}
