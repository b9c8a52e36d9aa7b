package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Failure codes reported in FieldError.Code
const (
	CodeRequired           = "required"
	CodeTooLong            = "too_long"
	CodeInvalid            = "invalid"
	CodeInvalidChoice      = "invalid_choice"
	CodeDuplicateUsername  = "duplicate_username"
	CodeDuplicateEmail     = "duplicate_email"
	CodeDuplicateName      = "duplicate_name"
	CodePasswordMismatch   = "password_mismatch"
	CodeInvalidOldPassword = "invalid_old_password"
	CodeTitleTooShort      = "title_too_short"
	CodeDuplicateTitleText = "duplicate_title_text"
	CodeNoSearchTarget     = "no_search_target"
)

// FieldError is a single user-correctable failure on a form field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError collects the field errors of one submitted form.
type ValidationError struct {
	Form   string       `json:"form"`
	Errors []FieldError `json:"errors"`
}

func newValidationError(form string) *ValidationError {
	return &ValidationError{Form: form}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s form is invalid: %s", e.Form, strings.Join(parts, "; "))
}

// Add records a failure on field.
func (e *ValidationError) Add(field, code, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Code: code, Message: message})
}

// Has reports whether any field failed with code.
func (e *ValidationError) Has(code string) bool {
	for _, fe := range e.Errors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// HasField reports whether field has at least one failure.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// merge folds the result of an ozzo struct validation into e. Anything other
// than field errors is returned unchanged.
func (e *ValidationError) merge(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fieldErr := fieldErrs[field]
		code := CodeInvalid
		var verr validation.Error
		if errors.As(fieldErr, &verr) {
			code = verr.Code()
		}
		e.Add(field, code, fieldErr.Error())
	}
	return nil
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// AsValidationError unwraps a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var required = validation.Required.ErrorObject(
	validation.NewError(CodeRequired, "This field is required."),
)

func maxLength(max int) validation.Rule {
	return validation.RuneLength(0, max).ErrorObject(
		validation.NewError(CodeTooLong, fmt.Sprintf("Ensure this value has at most %d characters.", max)),
	)
}
