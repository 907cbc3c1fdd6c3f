// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

import "github.com/go-openapi/strfmt"

// Vote statuses, in display priority order. The dashboard sorts open
// votes first, then submitted, then closed.
const (
	VoteStatusOpen      = "open"
	VoteStatusSubmitted = "submitted"
	VoteStatusClosed    = "closed"
)

// Vote is a committee poll (election, motion, survey-style ballot).
type Vote struct {
	UID          string          `json:"uid"`
	ProjectUID   string          `json:"project_uid"`
	CommitteeUID string          `json:"committee_uid,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	DueDate      strfmt.DateTime `json:"due_date,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	ResponseCount int            `json:"response_count"`
	EligibleCount int            `json:"eligible_count"`
}

// Survey is a distributed questionnaire with completion tracking.
type Survey struct {
	UID           string          `json:"uid"`
	ProjectUID    string          `json:"project_uid"`
	Title         string          `json:"title"`
	Status        string          `json:"status"`
	DueDate       strfmt.DateTime `json:"due_date,omitempty"`
	SentCount     int             `json:"sent_count"`
	ResponseCount int             `json:"response_count"`
}
