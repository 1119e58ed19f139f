package notify

import (
	"context"
	"fmt"

	"portfolio-server/internal/models"
)

// Kind identifies the notification to send.
type Kind string

const (
	KindBookingReceived  Kind = "booking_received"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
)

// Job is a queued notification. It carries a snapshot of the appointment so
// the worker never reads the database.
type Job struct {
	Kind          Kind    `json:"kind"`
	To            string  `json:"to"`
	AppointmentID string  `json:"appointmentId"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"timeSlot"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Message       *string `json:"message,omitempty"`
}

// NewAppointmentJob builds a job for the given appointment.
func NewAppointmentJob(kind Kind, to string, a *models.Appointment) Job {
	return Job{
		Kind:          kind,
		To:            to,
		AppointmentID: a.ID,
		Date:          a.Date.String(),
		TimeSlot:      a.TimeSlot,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Message:       a.Message,
	}
}

// Queue accepts jobs for asynchronous delivery.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Render turns a job into the email sent to its recipient.
func Render(job Job) (Message, error) {
	msg := Message{To: job.To}
	switch job.Kind {
	case KindBookingReceived:
		msg.Subject = fmt.Sprintf("Nouvelle demande de rendez-vous le %s à %s", job.Date, job.TimeSlot)
		msg.Body = fmt.Sprintf("Nom : %s\nEmail : %s\nTéléphone : %s\nDate : %s\nCréneau : %s\n\nMessage :\n%s\n",
			job.Name, job.Email, deref(job.Phone), job.Date, job.TimeSlot, deref(job.Message))
	case KindBookingConfirmed:
		msg.Subject = "Votre rendez-vous est confirmé"
		msg.Body = fmt.Sprintf("Bonjour %s,\n\nVotre rendez-vous du %s à %s est confirmé.\n\nÀ bientôt !\n",
			job.Name, job.Date, job.TimeSlot)
	case KindBookingCancelled:
		msg.Subject = "Votre rendez-vous a été annulé"
		msg.Body = fmt.Sprintf("Bonjour %s,\n\nVotre rendez-vous du %s à %s a été annulé.\nN'hésitez pas à réserver un autre créneau.\n",
			job.Name, job.Date, job.TimeSlot)
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", job.Kind)
	}
	if msg.To == "" {
		return Message{}, fmt.Errorf("notification %s has no recipient", job.Kind)
	}
	return msg, nil
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
