package services

import (
	"bufio"
	"io"
	"strings"
	"time"

	"portfolio-server/internal/models"
)

var exportHeader = []string{"ID", "Date", "Time-slot", "Name", "Email", "Phone", "Message", "Status", "CreatedAt", "UpdatedAt"}

// ExportFilename names the CSV attachment produced on day.
func ExportFilename(day models.Date) string {
	return "appointments-" + day.String() + ".csv"
}

// WriteAppointmentsCSV writes a header row and one row per appointment.
// Every field is quoted and embedded quotes are doubled.
func WriteAppointmentsCSV(w io.Writer, appointments []models.Appointment) error {
	bw := bufio.NewWriter(w)
	if err := writeQuotedRow(bw, exportHeader); err != nil {
		return err
	}
	for _, a := range appointments {
		row := []string{
			a.ID,
			a.Date.String(),
			a.TimeSlot,
			a.Name,
			a.Email,
			deref(a.Phone),
			deref(a.Message),
			string(a.Status),
			a.CreatedAt.UTC().Format(time.RFC3339),
			a.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writeQuotedRow(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeQuotedRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
