// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package datatypes

import "github.com/go-openapi/strfmt"

// Meeting is an upcoming or recurring project meeting managed through
// the meeting provider integration.
type Meeting struct {
	UID             string          `json:"uid"`
	ProjectUID      string          `json:"project_uid"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	StartTime       strfmt.DateTime `json:"start_time"`
	Duration        int             `json:"duration"` // minutes
	Timezone        string          `json:"timezone,omitempty"`
	Recurrence      string          `json:"recurrence,omitempty"`
	JoinURL         string          `json:"join_url,omitempty"`
	Visibility      string          `json:"visibility,omitempty"`
	Restricted      bool            `json:"restricted"`
	RecordingEnabled bool           `json:"recording_enabled"`
	CommitteeUIDs   []string        `json:"committee_uids,omitempty"`
	RegistrantCount int             `json:"registrant_count"`
}

// Registrant is an invited participant of a meeting.
type Registrant struct {
	UID        string `json:"uid"`
	MeetingUID string `json:"meeting_uid"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Host       bool   `json:"host"`
	Type       string `json:"type,omitempty"` // direct or committee
}

// RSVP is a registrant's attendance response for one occurrence.
type RSVP struct {
	UID           string `json:"uid"`
	MeetingUID    string `json:"meeting_uid"`
	RegistrantUID string `json:"registrant_uid"`
	OccurrenceID  string `json:"occurrence_id,omitempty"`
	Response      string `json:"response"` // accepted, declined, tentative
}

// Attachment is metadata for a file attached to a meeting. Bytes live
// in the attachment store, not in the record.
type Attachment struct {
	UID        string          `json:"uid"`
	MeetingUID string          `json:"meeting_uid"`
	FileName   string          `json:"file_name"`
	FileSize   int64           `json:"file_size"`
	MimeType   string          `json:"mime_type,omitempty"`
	UploadedBy string          `json:"uploaded_by,omitempty"`
	UploadedAt strfmt.DateTime `json:"uploaded_at,omitempty"`
}

// PastMeeting is a meeting occurrence that already happened, with its
// attendance summary.
type PastMeeting struct {
	UID             string          `json:"uid"`
	ProjectUID      string          `json:"project_uid"`
	MeetingUID      string          `json:"meeting_uid,omitempty"`
	Title           string          `json:"title"`
	StartTime       strfmt.DateTime `json:"start_time"`
	Duration        int             `json:"duration"`
	RecordingURL    string          `json:"recording_url,omitempty"`
	TranscriptURL   string          `json:"transcript_url,omitempty"`
	InviteeCount    int             `json:"invitee_count"`
	AttendeeCount   int             `json:"attendee_count"`
}

// Participant is one attendee row of a past meeting.
type Participant struct {
	UID            string `json:"uid"`
	PastMeetingUID string `json:"past_meeting_uid"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Attended       bool   `json:"attended"`
}

// MeetingFilter narrows a meeting list request.
type MeetingFilter struct {
	ProjectUID   string
	CommitteeUID string
	Search       string
}
