// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

// MailingList is a project mailing list managed through the groups
// integration.
type MailingList struct {
	UID          string   `json:"uid"`
	ProjectUID   string   `json:"project_uid"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type,omitempty"` // discussion or announcement
	Public       bool     `json:"public"`
	CommitteeUIDs []string `json:"committee_uids,omitempty"`
	MemberCount  int      `json:"member_count"`
}
