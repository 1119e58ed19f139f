package models

import "gorm.io/gorm"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// DateLayout is the wire and storage format of appointment dates.
const DateLayout = "2006-01-02"

// AppointmentStatuses lists every valid status in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// IsActive reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a booking request for one slot.
type Appointment struct {
	BaseModel
	Date     Date              `gorm:"not null;index:idx_appointment_slot" json:"date"`
	TimeSlot string            `gorm:"size:5;not null;index:idx_appointment_slot" json:"timeSlot"`
	Name     string            `gorm:"size:255;not null" json:"name"`
	Email    string            `gorm:"size:255;not null" json:"email"`
	Phone    *string           `gorm:"size:50" json:"phone"`
	Message  *string           `gorm:"type:text" json:"message"`
	Status   AppointmentStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`

	// ActiveSlot is non-NULL only while the appointment occupies its slot.
	// MySQL allows many NULLs in a unique index, so the index holds at most
	// one active appointment per slot.
	ActiveSlot *string `gorm:"size:16;uniqueIndex" json:"-"`
}

// SlotKey identifies the (date, slot) pair of the appointment.
func (a *Appointment) SlotKey() string {
	return SlotKey(a.Date, a.TimeSlot)
}

// SlotKey formats a (date, slot) pair as stored in the active_slot column.
func SlotKey(date Date, timeSlot string) string {
	return date.String() + " " + timeSlot
}

// BeforeSave keeps ActiveSlot in step with Status.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.syncActiveSlot()
	return nil
}

func (a *Appointment) syncActiveSlot() {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Status.IsActive() {
		key := a.SlotKey()
		a.ActiveSlot = &key
		return
	}
	a.ActiveSlot = nil
}
