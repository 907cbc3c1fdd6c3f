// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

// User is an identity record from the identity/profile service.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Permission roles. A manage grant implies view.
const (
	PermissionView   = "view"
	PermissionManage = "manage"
)

// Permission grants a user a role on a project (or a sub-scope of it).
type Permission struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Scope    string `json:"scope,omitempty"` // project, committees, meetings, ...
}

// Organization is a company record from the organization service.
type Organization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// SearchResult is one row of the cross-resource search endpoint.
type SearchResult struct {
	Type string `json:"type"` // project, committee, meeting
	UID  string `json:"uid"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
