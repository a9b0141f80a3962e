package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// MinPasswordLength is the shortest password accepted at registration or change.
	MinPasswordLength = 6
)

var validate = validator.New()

func errNoFields() error {
	return domain.NewValidationError("", "no fields to update")
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(field, "is required")
	}
	return value, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if email == "" {
		return domain.NewValidationError("email", "is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return domain.NewValidationError("email", "must be a valid email")
	}
	return nil
}

func checkDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return domain.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return nil
}

func parseClock(field, value string) (time.Time, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a time in HH:MM format")
	}
	return t, nil
}

// checkTimeRange requires both HH:MM values to parse and end to come strictly after start.
func checkTimeRange(start, end string) error {
	s, err := parseClock("hora_inicio", start)
	if err != nil {
		return err
	}
	e, err := parseClock("hora_fim", end)
	if err != nil {
		return err
	}
	if !e.After(s) {
		return domain.NewValidationError("hora_fim", "must be after hora_inicio")
	}
	return nil
}

// stringValue asserts a patch value is a string.
func stringValue(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", domain.NewValidationError(field, "must be a string")
	}
	return s, nil
}

func textValue(field string, value any) (string, error) {
	s, err := stringValue(field, value)
	if err != nil {
		return "", err
	}
	return requireText(field, s)
}

// patchString returns the string under field, or fallback when the patch does not touch it.
func patchString(patch repository.Patch, field, fallback string) (string, error) {
	v, ok := patch[field]
	if !ok {
		return fallback, nil
	}
	return stringValue(field, v)
}

// applyPatch runs update and treats a row that was not touched as a persistence failure.
func applyPatch(ctx context.Context, entity string, id int64, patch repository.Patch,
	update func(context.Context, int64, repository.Patch) (bool, error)) error {
	if len(patch) == 0 {
		return errNoFields()
	}
	ok, err := update(ctx, id, patch)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update %s %d: %w", entity, id, domain.ErrNoRowsAffected)
	}
	return nil
}

func checkDeleted(entity string, id int64, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %s %d: %w", entity, id, domain.ErrNoRowsAffected)
	}
	return nil
}
