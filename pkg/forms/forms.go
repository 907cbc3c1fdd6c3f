// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package forms implements the submit lifecycle shared by every
// mutating screen: validate all fields, surface inline errors without
// any network call when invalid, otherwise perform exactly one write
// and map the outcome to a user-visible notification.
//
// Validation rules are declared as `validate` struct tags
// (go-playground/validator); field names in error maps follow the
// struct's `json` tags so they line up with the wire payload.
package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is the transient message shown after a submit attempt.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ErrInvalid is returned by Submit when validation fails; no write was
// attempted.
var ErrInvalid = errors.New("form is invalid")

// statusCarrier is implemented by errors that know their HTTP status
// (datatypes.ServiceError does).
type statusCarrier interface {
	HTTPStatus() int
}

// engine is the shared validation engine. Forms and the gateway's
// request binding both run payloads through it, so inline errors and
// 400 response bodies carry identical field names and messages.
var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	// Report fields by their json tag so inline errors match the wire
	// payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Check validates a payload against its `validate` tags and returns
// per-field messages keyed by json tag, empty when valid.
func Check(value any) map[string]string {
	errs := make(map[string]string)
	err := engine.Struct(value)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = messageForTag(fe)
	}
	return errs
}

// Form binds a payload type to its validation rules and tracks the
// touched/dirty and submitting flags of the screen. Safe for
// concurrent use, though a form normally belongs to one screen.
type Form[T any] struct {
	mu         sync.Mutex
	touched    map[string]bool
	fieldErrs  map[string]string
	submitting bool
}

// New creates a form for payload type T.
func New[T any]() *Form[T] {
	return &Form[T]{
		touched: make(map[string]bool),
	}
}

// Touch marks a field as touched (user interacted with it).
func (f *Form[T]) Touch(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
}

// Touched reports whether a field has been touched.
func (f *Form[T]) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// FieldErrors returns the inline errors of the last validation.
func (f *Form[T]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// Submitting reports whether a write is in flight (the form is
// disabled).
func (f *Form[T]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate checks value against its rules and returns per-field
// messages, empty when valid.
func (f *Form[T]) Validate(value T) map[string]string {
	return Check(value)
}

// Submit runs the submit lifecycle. When validation fails, every
// invalid field is marked touched so inline errors surface, no write
// is attempted, and ErrInvalid is returned. When valid, the form is
// disabled for the duration of exactly one call to do; the outcome is
// mapped to a notification and the original error (if any) is
// returned so the caller can keep the form open.
func (f *Form[T]) Submit(ctx context.Context, value T, do func(ctx context.Context) error) (Notification, error) {
	fieldErrs := f.Validate(value)

	f.mu.Lock()
	f.fieldErrs = fieldErrs
	if len(fieldErrs) > 0 {
		for field := range fieldErrs {
			f.touched[field] = true
		}
		f.mu.Unlock()
		return Notification{Level: LevelError, Message: "Please correct the highlighted fields"}, ErrInvalid
	}
	f.submitting = true
	f.mu.Unlock()

	err := do(ctx)

	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()

	if err != nil {
		return Notification{Level: LevelError, Message: MessageFor(err)}, err
	}
	return Notification{Level: LevelSuccess, Message: "Changes saved"}, nil
}

// MessageFor maps a write failure to the user-visible message keyed
// off its HTTP status. Unknown and transport errors get the generic
// retry-suggesting message.
func MessageFor(err error) string {
	var sc statusCarrier
	if errors.As(err, &sc) {
		switch sc.HTTPStatus() {
		case http.StatusNotFound:
			return "The requested record was not found. It may have been removed."
		case http.StatusForbidden:
			return "You do not have permission to perform this action."
		case http.StatusConflict:
			return "This record was changed by someone else. Refresh and try again."
		}
	}
	return "Something went wrong. Please try again."
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}
