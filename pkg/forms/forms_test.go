// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"omitempty,oneof=chair member observer"`
}

type statusErr int

func (e statusErr) Error() string   { return "service error" }
func (e statusErr) HTTPStatus() int { return int(e) }

func TestSubmit_InvalidMakesNoCallAndTouchesFields(t *testing.T) {
	form := New[memberPayload]()
	called := 0

	note, err := form.Submit(context.Background(), memberPayload{Email: "not-an-email"}, func(ctx context.Context) error {
		called++
		return nil
	})

	require.ErrorIs(t, err, ErrInvalid)
	assert.Zero(t, called, "invalid submit must not issue a write")
	assert.Equal(t, LevelError, note.Level)

	fieldErrs := form.FieldErrors()
	assert.Contains(t, fieldErrs, "first_name")
	assert.Contains(t, fieldErrs, "last_name")
	assert.Contains(t, fieldErrs, "email")
	for field := range fieldErrs {
		assert.True(t, form.Touched(field), "field %s should be touched", field)
	}
}

func TestSubmit_ValidCallsExactlyOnce(t *testing.T) {
	form := New[memberPayload]()
	called := 0

	note, err := form.Submit(context.Background(), memberPayload{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", Role: "chair",
	}, func(ctx context.Context) error {
		called++
		assert.True(t, form.Submitting(), "form should be disabled during the write")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Equal(t, LevelSuccess, note.Level)
	assert.False(t, form.Submitting())
	assert.Empty(t, form.FieldErrors())
}

func TestSubmit_FailureKeepsFormOpenWithStatusMessage(t *testing.T) {
	form := New[memberPayload]()
	payload := memberPayload{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org"}

	note, err := form.Submit(context.Background(), payload, func(ctx context.Context) error {
		return statusErr(403)
	})

	require.Error(t, err)
	assert.Equal(t, LevelError, note.Level)
	assert.Contains(t, note.Message, "permission")
	assert.False(t, form.Submitting(), "form re-enables after failure")
}

func TestMessageFor(t *testing.T) {
	assert.Contains(t, MessageFor(statusErr(404)), "not found")
	assert.Contains(t, MessageFor(statusErr(403)), "permission")
	assert.Contains(t, MessageFor(statusErr(500)), "try again")
	assert.Contains(t, MessageFor(errors.New("dial tcp: connection refused")), "try again")
}

func TestCheck_ReportsByJSONTag(t *testing.T) {
	errs := Check(&memberPayload{Email: "not-an-email"})
	assert.Equal(t, "This field is required", errs["first_name"])
	assert.Equal(t, "This field is required", errs["last_name"])
	assert.Equal(t, "Must be a valid email address", errs["email"])

	assert.Empty(t, Check(&memberPayload{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org",
	}))
}

func TestValidate_OneofRule(t *testing.T) {
	form := New[memberPayload]()
	errs := form.Validate(memberPayload{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", Role: "emperor",
	})
	require.Contains(t, errs, "role")
	assert.Contains(t, errs["role"], "one of")
}
