package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/logger"
	"portfolio-server/internal/models"
	"portfolio-server/internal/notify"
	"portfolio-server/internal/repository"
)

// Client-facing messages.
const (
	MsgSlotTaken           = "Ce créneau est déjà réservé"
	MsgPastDate            = "La date ne peut pas être dans le passé"
	MsgInvalidSlot         = "Créneau horaire invalide"
	MsgInvalidDate         = "Format de date invalide (AAAA-MM-JJ attendu)"
	MsgInvalidMonth        = "Format de mois invalide (AAAA-MM attendu)"
	MsgInvalidStatus       = "Statut invalide"
	MsgAppointmentNotFound = "Rendez-vous introuvable"
)

// AppointmentStore is the persistence needed by BookingService.
type AppointmentStore interface {
	CountActive(ctx context.Context, date models.Date, timeSlot, excludeID string) (int64, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Get(ctx context.Context, id string) (*models.Appointment, error)
	Save(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error)
	BookedSlots(ctx context.Context, date models.Date) ([]string, error)
	BookedDates(ctx context.Context, from, to models.Date) (map[string][]string, error)
}

// BookingRequest is a public booking. Field presence and email format are
// checked by the caller's binding.
type BookingRequest struct {
	Date     string
	TimeSlot string
	Name     string
	Email    string
	Phone    *string
	Message  *string
}

// AppointmentPatch is an administrative correction. Nil fields are kept.
type AppointmentPatch struct {
	Status   *models.AppointmentStatus
	Date     *string
	TimeSlot *string
	Name     *string
	Email    *string
	Phone    *string
	Message  *string
}

// BookingService owns the appointment lifecycle.
type BookingService struct {
	store      AppointmentStore
	queue      notify.Queue
	slots      []string
	location   *time.Location
	adminEmail string
	now        func() time.Time
}

// BookingOption customizes a BookingService.
type BookingOption func(*BookingService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// NewBookingService creates a BookingService. slots are the valid labels,
// location defines where a day starts and ends, adminEmail receives new
// booking alerts.
func NewBookingService(store AppointmentStore, queue notify.Queue, slots []string, location *time.Location, adminEmail string, opts ...BookingOption) *BookingService {
	if location == nil {
		location = time.UTC
	}
	s := &BookingService{
		store:      store,
		queue:      queue,
		slots:      slots,
		location:   location,
		adminEmail: adminEmail,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slots returns the configured slot labels.
func (s *BookingService) Slots() []string {
	return slices.Clone(s.slots)
}

// Today returns the current calendar day in the site time zone.
func (s *BookingService) Today() models.Date {
	return models.NewDate(s.now().In(s.location))
}

func (s *BookingService) validSlot(timeSlot string) bool {
	return slices.Contains(s.slots, timeSlot)
}

// CanBook reports whether (date, timeSlot) is free. A past date or an
// unknown slot is a validation error. No lock is taken: the unique
// active_slot index settles races at insert time.
func (s *BookingService) CanBook(ctx context.Context, date models.Date, timeSlot string) (bool, error) {
	if date.Before(s.Today()) {
		return false, apperrors.NewValidation(MsgPastDate)
	}
	if !s.validSlot(timeSlot) {
		return false, apperrors.NewValidation(MsgInvalidSlot)
	}

	count, err := s.store.CountActive(ctx, date, timeSlot, "")
	if err != nil {
		return false, apperrors.NewInternal("slot lookup failed", err)
	}
	return count == 0, nil
}

// Book creates a PENDING appointment and alerts the administrator.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidation(MsgInvalidDate)
	}

	free, err := s.CanBook(ctx, date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, apperrors.NewConflict(MsgSlotTaken)
	}

	appointment := &models.Appointment{
		Date:     date,
		TimeSlot: req.TimeSlot,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    emptyToNil(req.Phone),
		Message:  emptyToNil(req.Message),
		Status:   models.StatusPending,
	}
	if err := s.store.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgSlotTaken)
		}
		return nil, apperrors.NewInternal("create appointment failed", err)
	}

	logger.FromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("slot", appointment.SlotKey()).
		Msg("appointment booked")

	if s.adminEmail != "" {
		s.enqueue(ctx, notify.NewAppointmentJob(notify.KindBookingReceived, s.adminEmail, appointment))
	}
	return appointment, nil
}

// BookedSlots returns the occupied labels of one day (YYYY-MM-DD).
func (s *BookingService) BookedSlots(ctx context.Context, day string) ([]string, error) {
	date, err := models.ParseDate(day)
	if err != nil {
		return nil, apperrors.NewValidation(MsgInvalidDate)
	}
	slots, err := s.store.BookedSlots(ctx, date)
	if err != nil {
		return nil, apperrors.NewInternal("booked slots lookup failed", err)
	}
	return slots, nil
}

// BookedDates returns the occupied labels of every day of a month (YYYY-MM).
func (s *BookingService) BookedDates(ctx context.Context, month string) (map[string][]string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperrors.NewValidation(MsgInvalidMonth)
	}
	last := first.AddDate(0, 1, -1)

	booked, err := s.store.BookedDates(ctx, models.NewDate(first), models.NewDate(last))
	if err != nil {
		return nil, apperrors.NewInternal("booked dates lookup failed", err)
	}
	return booked, nil
}

func (s *BookingService) List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidation(MsgInvalidStatus)
	}
	appointments, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal("list appointments failed", err)
	}
	return appointments, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(MsgAppointmentNotFound)
		}
		return nil, apperrors.NewInternal("get appointment failed", err)
	}
	return appointment, nil
}

// Update applies an administrative patch. Moving to CONFIRMED or CANCELLED
// queues one email to the requester once the write has succeeded.
func (s *BookingService) Update(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidation(MsgInvalidStatus)
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStatus := appointment.Status
	previousSlot := appointment.SlotKey()

	if patch.Date != nil {
		date, err := models.ParseDate(*patch.Date)
		if err != nil {
			return nil, apperrors.NewValidation(MsgInvalidDate)
		}
		appointment.Date = date
	}
	if patch.TimeSlot != nil {
		if !s.validSlot(*patch.TimeSlot) {
			return nil, apperrors.NewValidation(MsgInvalidSlot)
		}
		appointment.TimeSlot = *patch.TimeSlot
	}
	if patch.Status != nil {
		appointment.Status = *patch.Status
	}
	if patch.Name != nil {
		appointment.Name = *patch.Name
	}
	if patch.Email != nil {
		appointment.Email = *patch.Email
	}
	if patch.Phone != nil {
		appointment.Phone = emptyToNil(patch.Phone)
	}
	if patch.Message != nil {
		appointment.Message = emptyToNil(patch.Message)
	}

	// Re-check only when the appointment starts occupying a slot it did not hold.
	movedInto := appointment.SlotKey() != previousSlot || !previousStatus.IsActive()
	if appointment.Status.IsActive() && movedInto {
		count, err := s.store.CountActive(ctx, appointment.Date, appointment.TimeSlot, appointment.ID)
		if err != nil {
			return nil, apperrors.NewInternal("slot lookup failed", err)
		}
		if count > 0 {
			return nil, apperrors.NewConflict(MsgSlotTaken)
		}
	}

	if err := s.store.Save(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgSlotTaken)
		}
		return nil, apperrors.NewInternal("update appointment failed", err)
	}

	if appointment.Status != previousStatus {
		logger.FromContext(ctx).Info().
			Str("appointment_id", appointment.ID).
			Str("from", string(previousStatus)).
			Str("to", string(appointment.Status)).
			Msg("appointment status changed")

		switch appointment.Status {
		case models.StatusConfirmed:
			s.enqueue(ctx, notify.NewAppointmentJob(notify.KindBookingConfirmed, appointment.Email, appointment))
		case models.StatusCancelled:
			s.enqueue(ctx, notify.NewAppointmentJob(notify.KindBookingCancelled, appointment.Email, appointment))
		}
	}
	return appointment, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(MsgAppointmentNotFound)
		}
		return apperrors.NewInternal("delete appointment failed", err)
	}
	return nil
}

// enqueue hands a job to the queue. Failures are logged; the caller's write
// has already succeeded and stays.
func (s *BookingService) enqueue(ctx context.Context, job notify.Job) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("kind", string(job.Kind)).
			Str("appointment_id", job.AppointmentID).
			Msg("notification not queued")
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
