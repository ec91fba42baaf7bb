package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

// dayLayout is the wire format of calendar dates
const dayLayout = "2006-01-02"

// GetUserID extracts the authenticated user ID from the request context
func GetUserID(c *gin.Context) *uuid.UUID {
	id, ok := identity.FromContext(c.Request.Context())
	if !ok {
		return nil
	}
	return &id.UserID
}

// parseID reads a UUID path parameter, writing a 400 when it is malformed
func parseID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindError writes the response for a failed ShouldBind call
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		response.ValidationError(c, fields)
		return
	}
	response.BadRequest(c, "Invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "payment_mode":
		return "must be one of: cash momo cheque transfer"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	}
	return "is invalid"
}

// parseDay parses an optional YYYY-MM-DD value. Binding has already
// validated the format.
func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseDayEnd is parseDay moved to the last instant of that day, for
// inclusive range ends.
func parseDayEnd(s string) *time.Time {
	t := parseDay(s)
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}

// parseOptionalUUID parses a validated optional UUID query value
func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
