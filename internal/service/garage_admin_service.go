package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"revonn/internal/db"
	"revonn/internal/repository"
	"revonn/internal/utils"
)

// GarageAdminService covers the owner-side schedule and roster management.
type GarageAdminService struct {
	slots    *repository.SlotTemplateRepository
	staffing *repository.StaffingRepository
}

func NewGarageAdminService(slots *repository.SlotTemplateRepository, staffing *repository.StaffingRepository) *GarageAdminService {
	return &GarageAdminService{slots: slots, staffing: staffing}
}

func (s *GarageAdminService) ListTimeSlots(ctx context.Context, garageID uuid.UUID) ([]db.GarageTimeSlot, error) {
	return s.slots.ListByGarage(ctx, garageID)
}

func (s *GarageAdminService) CreateTimeSlot(ctx context.Context, slot *db.GarageTimeSlot) error {
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6, got %d", slot.DayOfWeek)
	}
	slot.StartTime = utils.NormalizeClock(slot.StartTime)
	slot.EndTime = utils.NormalizeClock(slot.EndTime)
	if slot.StartTime >= slot.EndTime {
		return fmt.Errorf("start_time %s must be before end_time %s", slot.StartTime, slot.EndTime)
	}
	return s.slots.Create(ctx, slot)
}

func (s *GarageAdminService) SetTimeSlotAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	return s.slots.SetAvailability(ctx, id, isAvailable)
}

func (s *GarageAdminService) DeleteTimeSlot(ctx context.Context, id uuid.UUID) error {
	return s.slots.Delete(ctx, id)
}

func (s *GarageAdminService) ListMechanics(ctx context.Context, garageID uuid.UUID) ([]db.Mechanic, error) {
	return s.staffing.ListMechanics(ctx, garageID)
}

func (s *GarageAdminService) CreateMechanic(ctx context.Context, mechanic *db.Mechanic) error {
	if mechanic.Name == "" {
		return fmt.Errorf("mechanic name is required")
	}
	if mechanic.Status == "" {
		mechanic.Status = "active"
	}
	return s.staffing.CreateMechanic(ctx, mechanic)
}

func (s *GarageAdminService) SetMechanicStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != "active" && status != "inactive" {
		return fmt.Errorf("unsupported mechanic status %q", status)
	}
	return s.staffing.SetMechanicStatus(ctx, id, status)
}
