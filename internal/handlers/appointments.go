package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/models"
	"portfolio-server/internal/repository"
	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// AppointmentHandler handles public booking and appointment administration.
type AppointmentHandler struct {
	Booking *services.BookingService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(booking *services.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Booking: booking}
}

// CreateAppointmentRequest represents the request body for booking a slot.
type CreateAppointmentRequest struct {
	Date     string  `json:"date" binding:"required,date"`
	TimeSlot string  `json:"timeSlot" binding:"required,timeslot"`
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Message  *string `json:"message" binding:"omitempty,max=2000"`
}

// UpdateAppointmentRequest is an administrative patch. Omitted fields are kept.
type UpdateAppointmentRequest struct {
	Status   *models.AppointmentStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	Date     *string                   `json:"date" binding:"omitempty,date"`
	TimeSlot *string                   `json:"timeSlot" binding:"omitempty,timeslot"`
	Name     *string                   `json:"name" binding:"omitempty,min=1,max=100"`
	Email    *string                   `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string                   `json:"phone" binding:"omitempty,max=30"`
	Message  *string                   `json:"message" binding:"omitempty,max=2000"`
}

// GetBooked answers ?date=YYYY-MM-DD with the booked slots of the day and
// ?month=YYYY-MM with the booked slots of every day of the month.
func (h *AppointmentHandler) GetBooked(c *gin.Context) {
	if day := c.Query("date"); day != "" {
		slots, err := h.Booking.BookedSlots(c.Request.Context(), day)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookedSlots": slots})
		return
	}

	if month := c.Query("month"); month != "" {
		booked, err := h.Booking.BookedDates(c.Request.Context(), month)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookedDates": booked})
		return
	}

	utils.BadRequest(c, "Paramètre date ou month requis")
}

// GetSlots returns the bookable slot labels.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.Booking.Slots()})
}

// CreateAppointment books a slot for a visitor.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Booking.Book(c.Request.Context(), services.BookingRequest{
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, appointment)
}

// ListAppointments returns appointments filtered by status, date, from and to.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	filter, err := appointmentFilter(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	appointments, err := h.Booking.List(c.Request.Context(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.List(c, appointments, len(appointments))
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appointment, err := h.Booking.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, appointment)
}

// UpdateAppointment changes the status or corrects the details of an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Booking.Update(c.Request.Context(), c.Param("id"), services.AppointmentPatch{
		Status:   req.Status,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.Booking.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": id})
}

// ExportAppointments sends the filtered appointments as a CSV attachment.
func (h *AppointmentHandler) ExportAppointments(c *gin.Context) {
	filter, err := appointmentFilter(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	appointments, err := h.Booking.List(c.Request.Context(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteAppointmentsCSV(&buf, appointments); err != nil {
		utils.HandleError(c, apperrors.NewInternal("csv export failed", err))
		return
	}

	filename := services.ExportFilename(h.Booking.Today())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func appointmentFilter(c *gin.Context) (repository.AppointmentFilter, error) {
	filter := repository.AppointmentFilter{Status: models.AppointmentStatus(c.Query("status"))}
	for param, dest := range map[string]**models.Date{
		"date": &filter.Date,
		"from": &filter.From,
		"to":   &filter.To,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return filter, apperrors.NewValidation(services.MsgInvalidDate).
				WithDetails(map[string]interface{}{param: "date"})
		}
		*dest = &d
	}
	return filter, nil
}
