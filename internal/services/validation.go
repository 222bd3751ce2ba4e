package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned for input the API should reject with 400.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// nullable update fields validate as their string, or as absent when cleared
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(dtos.NullString); ok && n.Value != nil {
			return *n.Value
		}
		return nil
	}, dtos.NullString{})

	_ = v.RegisterValidation("flight_status", func(fl validator.FieldLevel) bool {
		switch s := fl.Field().Interface().(type) {
		case entities.FlightStatus:
			return s.Valid()
		case string:
			return entities.FlightStatus(s).Valid()
		}
		return false
	})

	return v
}

func statusList() string {
	names := make([]string, len(entities.FlightStatuses))
	for i, s := range entities.FlightStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// toValidationError flattens validator output into one message per field.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = "must not be empty"
		case "max":
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "flight_status":
			msg = "must be one of " + statusList()
		default:
			msg = "is invalid"
		}
		fields[fe.Field()] = msg
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + fields[name]
	}
	return &ValidationError{Message: strings.Join(parts, "; "), Fields: fields}
}
