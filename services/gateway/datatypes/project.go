// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

import "github.com/go-openapi/strfmt"

// Project mirrors the project record served by the downstream project
// service. Records are replaced wholesale on refresh; nothing mutates
// them in place.
type Project struct {
	UID            string          `json:"uid"`
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Status         string          `json:"status,omitempty"`
	ParentUID      string          `json:"parent_uid,omitempty"`
	LogoURL        string          `json:"logo_url,omitempty"`
	Public         bool            `json:"public"`
	CommitteeCount int             `json:"committee_count"`
	MeetingCount   int             `json:"meeting_count"`
	CreatedAt      strfmt.DateTime `json:"created_at,omitempty"`
	UpdatedAt      strfmt.DateTime `json:"updated_at,omitempty"`
}

// ProjectSettings holds the per-project administrative settings page.
type ProjectSettings struct {
	ProjectUID      string   `json:"project_uid"`
	MissionStatement string  `json:"mission_statement,omitempty"`
	AnnouncementURL string   `json:"announcement_url,omitempty"`
	Auditors        []string `json:"auditors,omitempty"`
	Writers         []string `json:"writers,omitempty"`
}

// ProjectFilter narrows a project list request. Empty fields are ignored.
type ProjectFilter struct {
	ParentUID string
	Search    string
}
