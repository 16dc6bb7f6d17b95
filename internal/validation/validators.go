package validation

// Package validation runs the console's local pre-submit checks.
// Failures are ClientValidation errors; callers must not issue a request when one is returned.

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/domain/model"
)

// MinPasswordLength is the shortest password accepted locally.
const MinPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

// MessageFunc renders a field error as a display message. Returning "" defers
// to the default message for the tag.
type MessageFunc func(fe validator.FieldError) string

// tagPriority orders failures so "missing" is reported before "mismatch" before "too short".
var tagPriority = map[string]int{
	"required": 0,
	"eqfield":  1,
	"min":      2,
	"email":    3,
}

// Struct validates v using its `validate` tags and reports the most relevant
// failure as a ClientValidation error.
func Struct(v any, msg MessageFunc) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "validate form")
	}

	first := fieldErrs[0]
	for _, fe := range fieldErrs[1:] {
		if priority(fe.Tag()) < priority(first.Tag()) {
			first = fe
		}
	}

	text := ""
	if msg != nil {
		text = msg(first)
	}
	if text == "" {
		text = DefaultMessage(first)
	}
	return apperrors.ClientValidationField(jsonName(first.Field()), text)
}

func priority(tag string) int {
	if p, ok := tagPriority[tag]; ok {
		return p
	}
	return len(tagPriority)
}

// DefaultMessage renders a generic message for a field error.
func DefaultMessage(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return label + " must be a valid email address."
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", label, fe.Param())
	case "gte":
		return label + " cannot be negative."
	case "eqfield":
		return fmt.Sprintf("%s must match %s.", label, Label(fe.Param()))
	default:
		return label + " is invalid."
	}
}

// Label turns a Go field name into a sentence-case label ("FirstName" -> "First name").
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func jsonName(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Login checks that both credentials are present.
func Login(c model.Credentials) error {
	return Struct(c, func(validator.FieldError) string {
		return "Both username and password are required."
	})
}

// Registration checks the sign-up form: every field present, matching passwords,
// minimum password length, well-formed email.
func Registration(r model.Registration) error {
	return Struct(r, func(fe validator.FieldError) string {
		switch fe.Tag() {
		case "required":
			return "All fields are required."
		case "eqfield":
			return "Passwords do not match."
		case "min":
			return fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength)
		}
		return ""
	})
}

// PasswordChange checks the change-password form.
func PasswordChange(p model.PasswordChange) error {
	return Struct(p, func(fe validator.FieldError) string {
		switch fe.Tag() {
		case "required":
			return "All password fields are required."
		case "eqfield":
			return "New password and confirmation password do not match."
		case "min":
			return fmt.Sprintf("New password must be at least %d characters long.", MinPasswordLength)
		}
		return ""
	})
}

// Employee checks an employee form.
func Employee(e model.Employee) error {
	return Struct(e, nil)
}

// Department checks a department form.
func Department(d model.Department) error {
	return Struct(d, nil)
}

// Project checks a project form, including the date range.
func Project(p model.Project) error {
	if err := Struct(p, nil); err != nil {
		return err
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate.Time) {
		return apperrors.ClientValidationField("endDate", "End date cannot be before start date.")
	}
	return nil
}
