// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

import "github.com/go-openapi/strfmt"

// Committee is a governance body (TSC, board, marketing, ...) attached
// to a project.
type Committee struct {
	UID              string          `json:"uid"`
	ProjectUID       string          `json:"project_uid"`
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	Description      string          `json:"description,omitempty"`
	EnableVoting     bool            `json:"enable_voting"`
	Public           bool            `json:"public"`
	SSOGroupEnabled  bool            `json:"sso_group_enabled"`
	TotalMembers     int             `json:"total_members"`
	CreatedAt        strfmt.DateTime `json:"created_at,omitempty"`
	UpdatedAt        strfmt.DateTime `json:"updated_at,omitempty"`
}

// CommitteeMember is one seat on a committee.
type CommitteeMember struct {
	UID          string          `json:"uid"`
	CommitteeUID string          `json:"committee_uid"`
	Username     string          `json:"username,omitempty"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Organization string          `json:"organization,omitempty"`
	JobTitle     string          `json:"job_title,omitempty"`
	Role         string          `json:"role,omitempty"`
	VotingStatus string          `json:"voting_status,omitempty"`
	AppointedBy  string          `json:"appointed_by,omitempty"`
	StartDate    strfmt.DateTime `json:"start_date,omitempty"`
	EndDate      strfmt.DateTime `json:"end_date,omitempty"`
}
