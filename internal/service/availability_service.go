package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"revonn/internal/db"
	"revonn/internal/entities"
	"revonn/internal/utils"
)

// SlotTemplateStore provides the weekly template rows for a garage.
type SlotTemplateStore interface {
	ListAvailableByWeekday(ctx context.Context, garageID uuid.UUID, dayOfWeek int) ([]db.GarageTimeSlot, error)
}

// StaffingStore provides the mechanic roster and the bookings that occupy
// capacity on a given date.
type StaffingStore interface {
	ListActiveMechanics(ctx context.Context, garageID uuid.UUID) ([]db.Mechanic, error)
	ListOccupyingBookings(ctx context.Context, garageID uuid.UUID, date string) ([]db.Booking, error)
}

// StaffingSnapshot is the resolved roster and occupying bookings for one
// garage and date. Ready is false when required input was missing and no
// lookup was attempted; Degraded is true when a lookup failed and an empty
// list was substituted.
type StaffingSnapshot struct {
	Mechanics []db.Mechanic
	Bookings  []db.Booking
	Ready     bool
	Degraded  bool
}

// IsTimeSlotAvailable reports whether the slot starting at clock still has
// mechanic capacity. With no active mechanics every slot is available: the
// booking is accepted and the garage owner assigns staff later.
func (s *StaffingSnapshot) IsTimeSlotAvailable(clock string) bool {
	if len(s.Mechanics) == 0 {
		return true
	}
	clock = utils.NormalizeClock(clock)

	assigned := 0
	for _, b := range s.Bookings {
		if utils.NormalizeClock(b.BookingTime) == clock && b.AssignedMechanicID.Valid {
			assigned++
		}
	}
	return assigned < len(s.Mechanics)
}

// AvailableMechanicForSlot returns the first mechanic in roster order not yet
// assigned to a booking at clock, or nil when the roster is empty or fully
// taken. First-free-in-fetch-order is the assignment policy; there is no
// round-robin or load balancing.
func (s *StaffingSnapshot) AvailableMechanicForSlot(clock string) *db.Mechanic {
	if len(s.Mechanics) == 0 {
		return nil
	}
	clock = utils.NormalizeClock(clock)

	taken := make(map[uuid.UUID]struct{}, len(s.Bookings))
	for _, b := range s.Bookings {
		if utils.NormalizeClock(b.BookingTime) == clock && b.AssignedMechanicID.Valid {
			taken[b.AssignedMechanicID.UUID] = struct{}{}
		}
	}
	for i := range s.Mechanics {
		if _, ok := taken[s.Mechanics[i].ID]; !ok {
			return &s.Mechanics[i]
		}
	}
	return nil
}

type AvailabilityConfig struct {
	// List every template slot unfiltered when the staffing lookup fails,
	// instead of answering with nothing.
	ShowSlotsOnDegradedStaffing bool
	SlotCacheTTL                time.Duration
}

// AvailabilityService combines slot templates, the mechanic roster and
// occupying bookings into the bookable slot list for a garage and date.
type AvailabilityService struct {
	slots    SlotTemplateStore
	staffing StaffingStore
	cfg      AvailabilityConfig
	cache    *cache.Cache
	log      zerolog.Logger
}

func NewAvailabilityService(slots SlotTemplateStore, staffing StaffingStore, cfg AvailabilityConfig, log zerolog.Logger) *AvailabilityService {
	var templateCache *cache.Cache
	if cfg.SlotCacheTTL > 0 {
		templateCache = cache.New(cfg.SlotCacheTTL, 2*cfg.SlotCacheTTL)
	}
	return &AvailabilityService{
		slots:    slots,
		staffing: staffing,
		cfg:      cfg,
		cache:    templateCache,
		log:      log,
	}
}

// ResolveStaffing fetches the active roster and the occupying bookings for
// the garage and date. Both lookups fail soft: an error degrades to an empty
// list so availability stays computable.
func (s *AvailabilityService) ResolveStaffing(ctx context.Context, garageID, date string) StaffingSnapshot {
	if garageID == "" || date == "" {
		return StaffingSnapshot{}
	}
	gid, err := uuid.Parse(garageID)
	if err != nil {
		return StaffingSnapshot{}
	}

	snapshot := StaffingSnapshot{Ready: true}

	mechanics, err := s.staffing.ListActiveMechanics(ctx, gid)
	if err != nil {
		s.log.Warn().Err(err).Str("garage_id", garageID).Msg("mechanic lookup failed, assuming empty roster")
		snapshot.Degraded = true
	} else {
		snapshot.Mechanics = mechanics
	}

	bookings, err := s.staffing.ListOccupyingBookings(ctx, gid, date)
	if err != nil {
		s.log.Warn().Err(err).Str("garage_id", garageID).Str("date", date).Msg("booking lookup failed, assuming no conflicts")
		snapshot.Degraded = true
	} else {
		snapshot.Bookings = bookings
	}

	return snapshot
}

// AvailableSlots computes the bookable slots for a garage on an ISO
// "YYYY-MM-DD" date. Missing input yields an empty list; lookup failures on
// the slot templates yield an empty list as well. The returned error is only
// non-nil for a malformed date.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, garageID, date string) ([]entities.AvailableSlot, error) {
	if garageID == "" || date == "" {
		return []entities.AvailableSlot{}, nil
	}
	gid, err := uuid.Parse(garageID)
	if err != nil {
		return nil, fmt.Errorf("invalid garage id %q: %w", garageID, err)
	}
	dayOfWeek, err := utils.DayOfWeek(date)
	if err != nil {
		return nil, err
	}

	templates, err := s.fetchTemplates(ctx, gid, dayOfWeek)
	if err != nil {
		s.log.Warn().Err(err).Str("garage_id", garageID).Int("day_of_week", dayOfWeek).Msg("slot template lookup failed")
		return []entities.AvailableSlot{}, nil
	}

	snapshot := s.ResolveStaffing(ctx, garageID, date)
	if snapshot.Degraded && !s.cfg.ShowSlotsOnDegradedStaffing {
		return []entities.AvailableSlot{}, nil
	}
	// Degraded staffing passes every template through unfiltered, mirroring
	// the optimistic show-all behavior of the booking client while data is
	// still loading.
	passAll := snapshot.Degraded

	slots := make([]entities.AvailableSlot, 0, len(templates))
	for _, tpl := range templates {
		if !passAll && !snapshot.IsTimeSlotAvailable(tpl.StartTime) {
			continue
		}
		slots = append(slots, entities.AvailableSlot{
			ID:        tpl.ID,
			StartTime: tpl.StartTime,
			EndTime:   tpl.EndTime,
			DayOfWeek: tpl.DayOfWeek,
			Label:     utils.FormatSlotLabel(tpl.StartTime, tpl.EndTime),
		})
	}
	return slots, nil
}

// SlotOffered reports whether an enabled template slot starts at clock on the
// date's weekday. Unlike AvailableSlots this does not fail soft: booking
// creation needs a hard answer, so lookup errors surface to the caller.
func (s *AvailabilityService) SlotOffered(ctx context.Context, garageID uuid.UUID, date, clock string) (bool, error) {
	dayOfWeek, err := utils.DayOfWeek(date)
	if err != nil {
		return false, err
	}
	templates, err := s.fetchTemplates(ctx, garageID, dayOfWeek)
	if err != nil {
		return false, err
	}

	clock = utils.NormalizeClock(clock)
	for _, tpl := range templates {
		if utils.NormalizeClock(tpl.StartTime) == clock {
			return true, nil
		}
	}
	return false, nil
}

func (s *AvailabilityService) fetchTemplates(ctx context.Context, garageID uuid.UUID, dayOfWeek int) ([]db.GarageTimeSlot, error) {
	key := fmt.Sprintf("%s|%d", garageID, dayOfWeek)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.([]db.GarageTimeSlot), nil
		}
	}

	templates, err := s.slots.ListAvailableByWeekday(ctx, garageID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, templates, cache.DefaultExpiration)
	}
	return templates, nil
}
