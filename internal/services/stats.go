package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/models"
)

// AppointmentCounter is the part of the appointment store the dashboard reads.
type AppointmentCounter interface {
	CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int64, error)
	CountUpcoming(ctx context.Context, from models.Date) (int64, error)
}

// Counter counts the rows of one content table.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats is the admin dashboard summary.
type Stats struct {
	Appointments map[models.AppointmentStatus]int64 `json:"appointments"`
	Upcoming     int64                              `json:"upcoming"`
	Projects     int64                              `json:"projects"`
	Experiences  int64                              `json:"experiences"`
	Engagements  int64                              `json:"engagements"`
	Technologies int64                              `json:"technologies"`
}

type StatsService struct {
	appointments AppointmentCounter
	booking      *BookingService
	projects     Counter
	experiences  Counter
	engagements  Counter
	technologies Counter
}

func NewStatsService(appointments AppointmentCounter, booking *BookingService, projects, experiences, engagements, technologies Counter) *StatsService {
	return &StatsService{
		appointments: appointments,
		booking:      booking,
		projects:     projects,
		experiences:  experiences,
		engagements:  engagements,
		technologies: technologies,
	}
}

// Summary runs the counts concurrently. Every status is present in the
// result, zero when no appointment has it.
func (s *StatsService) Summary(ctx context.Context) (*Stats, error) {
	stats := &Stats{Appointments: make(map[models.AppointmentStatus]int64, len(models.AppointmentStatuses))}
	var byStatus map[models.AppointmentStatus]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byStatus, err = s.appointments.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Upcoming, err = s.appointments.CountUpcoming(gctx, s.booking.Today())
		return err
	})
	counts := []struct {
		counter Counter
		dest    *int64
	}{
		{s.projects, &stats.Projects},
		{s.experiences, &stats.Experiences},
		{s.engagements, &stats.Engagements},
		{s.technologies, &stats.Technologies},
	}
	for _, c := range counts {
		g.Go(func() (err error) {
			*c.dest, err = c.counter.Count(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewInternal("stats lookup failed", err)
	}

	for _, status := range models.AppointmentStatuses {
		stats.Appointments[status] = byStatus[status]
	}
	return stats, nil
}
