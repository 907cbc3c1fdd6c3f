// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package downstream declares the contracts for the services the
// gateway fronts. The gateway never owns data: every route resolves to
// exactly one call on one of these interfaces (plus the occasional
// best-effort fan-out declared in the handlers).
//
// Two implementations exist:
//
//   - clients: HTTP clients against the real project/meeting/identity
//     services
//   - store: a BadgerDB-backed demo store used when no downstream URLs
//     are configured
//
// All implementations must be safe for concurrent use.
package downstream

import (
	"context"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

// ProjectService fronts the Postgres-backed project data service:
// projects, committees, mailing lists, votes, and surveys.
type ProjectService interface {
	ListProjects(ctx context.Context, filter datatypes.ProjectFilter) ([]datatypes.Project, error)
	GetProject(ctx context.Context, slug string) (*datatypes.Project, error)
	GetProjectSettings(ctx context.Context, projectUID string) (*datatypes.ProjectSettings, error)
	UpdateProjectSettings(ctx context.Context, settings datatypes.ProjectSettings) error

	ListCommittees(ctx context.Context, projectUID string) ([]datatypes.Committee, error)
	GetCommittee(ctx context.Context, uid string) (*datatypes.Committee, error)
	CreateCommittee(ctx context.Context, committee datatypes.Committee) (*datatypes.Committee, error)
	UpdateCommittee(ctx context.Context, committee datatypes.Committee) (*datatypes.Committee, error)
	DeleteCommittee(ctx context.Context, uid string) error
	ListCommitteeMembers(ctx context.Context, committeeUID string) ([]datatypes.CommitteeMember, error)
	AddCommitteeMember(ctx context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error)
	UpdateCommitteeMember(ctx context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error)
	RemoveCommitteeMember(ctx context.Context, committeeUID, memberUID string) error

	ListMailingLists(ctx context.Context, projectUID string) ([]datatypes.MailingList, error)
	GetMailingList(ctx context.Context, uid string) (*datatypes.MailingList, error)
	CreateMailingList(ctx context.Context, list datatypes.MailingList) (*datatypes.MailingList, error)
	UpdateMailingList(ctx context.Context, list datatypes.MailingList) (*datatypes.MailingList, error)
	DeleteMailingList(ctx context.Context, uid string) error

	ListVotes(ctx context.Context, projectUID string) ([]datatypes.Vote, error)
	GetVote(ctx context.Context, uid string) (*datatypes.Vote, error)
	CreateVote(ctx context.Context, vote datatypes.Vote) (*datatypes.Vote, error)
	UpdateVote(ctx context.Context, vote datatypes.Vote) (*datatypes.Vote, error)
	DeleteVote(ctx context.Context, uid string) error

	ListSurveys(ctx context.Context, projectUID string) ([]datatypes.Survey, error)
}

// MeetingService fronts the message-bus-backed meeting service.
type MeetingService interface {
	ListMeetings(ctx context.Context, filter datatypes.MeetingFilter) ([]datatypes.Meeting, error)
	GetMeeting(ctx context.Context, uid string) (*datatypes.Meeting, error)
	CreateMeeting(ctx context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error)
	DeleteMeeting(ctx context.Context, uid string) error

	ListRegistrants(ctx context.Context, meetingUID string) ([]datatypes.Registrant, error)
	AddRegistrant(ctx context.Context, registrant datatypes.Registrant) (*datatypes.Registrant, error)
	RemoveRegistrant(ctx context.Context, meetingUID, registrantUID string) error
	ListRSVPs(ctx context.Context, meetingUID string) ([]datatypes.RSVP, error)

	ListPastMeetings(ctx context.Context, projectUID string) ([]datatypes.PastMeeting, error)
	GetPastMeeting(ctx context.Context, uid string) (*datatypes.PastMeeting, error)
	ListParticipants(ctx context.Context, pastMeetingUID string) ([]datatypes.Participant, error)

	ListAttachments(ctx context.Context, meetingUID string) ([]datatypes.Attachment, error)
	AddAttachment(ctx context.Context, attachment datatypes.Attachment) (*datatypes.Attachment, error)
	RemoveAttachment(ctx context.Context, meetingUID, attachmentUID string) error
}

// IdentityService fronts the identity/profile service: user search and
// per-project permission grants.
type IdentityService interface {
	SearchUsers(ctx context.Context, query string) ([]datatypes.User, error)
	GetUser(ctx context.Context, username string) (*datatypes.User, error)
	ListPermissions(ctx context.Context, projectUID string) ([]datatypes.Permission, error)
	PutPermission(ctx context.Context, projectUID string, permission datatypes.Permission) error
	DeletePermission(ctx context.Context, projectUID, username string) error
}

// OrganizationService fronts the organization lookup service.
type OrganizationService interface {
	SearchOrganizations(ctx context.Context, name string) ([]datatypes.Organization, error)
}
