package repository

import (
	"context"

	"gorm.io/gorm"

	"portfolio-server/internal/models"
)

// AppointmentFilter narrows the admin appointment list. Zero values are ignored.
type AppointmentFilter struct {
	Status models.AppointmentStatus
	Date   *models.Date
	From   *models.Date
	To     *models.Date
}

// AppointmentRepository persists appointments with GORM.
type AppointmentRepository struct {
	DB *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

// CountActive counts PENDING or CONFIRMED appointments on the slot.
// excludeID, when set, leaves that appointment out of the count.
func (r *AppointmentRepository) CountActive(ctx context.Context, date models.Date, timeSlot, excludeID string) (int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("date = ? AND time_slot = ? AND status IN ?", date, timeSlot, models.ActiveStatuses)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return mapError(r.DB.WithContext(ctx).Create(appointment).Error)
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Save(ctx context.Context, appointment *models.Appointment) error {
	return mapError(r.DB.WithContext(ctx).Save(appointment).Error)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns appointments ordered by date then slot.
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := r.DB.WithContext(ctx).Order("date asc").Order("time_slot asc")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	appointments := []models.Appointment{}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// BookedSlots returns the occupied slot labels of one day.
func (r *AppointmentRepository) BookedSlots(ctx context.Context, date models.Date) ([]string, error) {
	slots := []string{}
	err := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("date = ? AND status IN ?", date, models.ActiveStatuses).
		Order("time_slot asc").
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// BookedDates returns occupied slot labels keyed by YYYY-MM-DD for the
// inclusive range [from, to].
func (r *AppointmentRepository) BookedDates(ctx context.Context, from, to models.Date) (map[string][]string, error) {
	var rows []models.Appointment
	err := r.DB.WithContext(ctx).
		Select("date", "time_slot").
		Where("date >= ? AND date <= ? AND status IN ?", from, to, models.ActiveStatuses).
		Order("date asc").Order("time_slot asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	booked := make(map[string][]string)
	for _, row := range rows {
		key := row.Date.String()
		booked[key] = append(booked[key], row.TimeSlot)
	}
	return booked, nil
}

// CountByStatus returns the number of appointments per status.
func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int64, error) {
	var rows []struct {
		Status models.AppointmentStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.AppointmentStatus]int64, len(models.AppointmentStatuses))
	for _, status := range models.AppointmentStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountUpcoming counts active appointments on or after the given day.
func (r *AppointmentRepository) CountUpcoming(ctx context.Context, from models.Date) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("date >= ? AND status IN ?", from, models.ActiveStatuses).
		Count(&count).Error
	return count, err
}
