// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the error shape the gateway returns to clients.
// Code is a stable machine-readable identifier; Status is the HTTP
// status the centralized error middleware maps it to.
type ServiceError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the status the error maps to.
func (e *ServiceError) HTTPStatus() int {
	return e.Status
}

// Sentinel errors for the resources the gateway fronts. Handlers and
// downstream clients return these (optionally wrapped) and the error
// middleware translates them to JSON bodies.
var (
	ErrProjectNotFound     = &ServiceError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", Status: http.StatusNotFound}
	ErrCommitteeNotFound   = &ServiceError{Code: "COMMITTEE_NOT_FOUND", Message: "Committee not found", Status: http.StatusNotFound}
	ErrMeetingNotFound     = &ServiceError{Code: "MEETING_NOT_FOUND", Message: "Meeting not found", Status: http.StatusNotFound}
	ErrMailingListNotFound = &ServiceError{Code: "MAILING_LIST_NOT_FOUND", Message: "Mailing list not found", Status: http.StatusNotFound}
	ErrVoteNotFound        = &ServiceError{Code: "VOTE_NOT_FOUND", Message: "Vote not found", Status: http.StatusNotFound}
	ErrSurveyNotFound      = &ServiceError{Code: "SURVEY_NOT_FOUND", Message: "Survey not found", Status: http.StatusNotFound}
	ErrUserNotFound        = &ServiceError{Code: "USER_NOT_FOUND", Message: "User not found", Status: http.StatusNotFound}
	ErrRegistrantNotFound  = &ServiceError{Code: "REGISTRANT_NOT_FOUND", Message: "Registrant not found", Status: http.StatusNotFound}
	ErrAttachmentNotFound  = &ServiceError{Code: "ATTACHMENT_NOT_FOUND", Message: "Attachment not found", Status: http.StatusNotFound}
	ErrForbidden           = &ServiceError{Code: "FORBIDDEN", Message: "You do not have permission to perform this action", Status: http.StatusForbidden}
	ErrUnauthorized        = &ServiceError{Code: "UNAUTHORIZED", Message: "Authentication required", Status: http.StatusUnauthorized}
	ErrInternal            = &ServiceError{Code: "INTERNAL", Message: "Internal server error", Status: http.StatusInternalServerError}
)

// ValidationError carries per-field messages for a rejected request body.
// It always maps to HTTP 400.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// AsServiceError unwraps err to a *ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// NotFound reports whether err resolves to any 404-class service error.
func NotFound(err error) bool {
	if se, ok := AsServiceError(err); ok {
		return se.Status == http.StatusNotFound
	}
	return false
}
