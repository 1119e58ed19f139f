package utils

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"portfolio-server/internal/models"
)

const (
	msgInvalidPayload = "Requête invalide"
	msgValidation     = "Données invalides"
)

var (
	timeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	registerOnce    sync.Once
)

// RegisterValidators reports JSON field names in validation errors and adds
// the "date" (YYYY-MM-DD) and "timeslot" (HH:MM) rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			return timeSlotPattern.MatchString(fl.Field().String())
		})
	})
}

// ValidationDetails maps each failing JSON field to the rule it broke.
func ValidationDetails(err error) map[string]interface{} {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	details := make(map[string]interface{}, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}
	return details
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if details := ValidationDetails(err); details != nil {
			Error(c, http.StatusBadRequest, msgValidation, details)
			return false
		}
		BadRequest(c, msgInvalidPayload)
		return false
	}
	return true
}
