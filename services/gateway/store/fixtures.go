// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

func dt(t time.Time) strfmt.DateTime {
	return strfmt.DateTime(t)
}

// Seed loads the demo fixtures. Idempotent: records are keyed by their
// fixed UIDs, so re-running replaces rather than duplicates.
func (s *Store) Seed() error {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	projects := []datatypes.Project{
		{
			UID: "proj-cncf", Slug: "cncf", Name: "Cloud Native Computing Foundation",
			Description: "Sustainable ecosystems for cloud native software",
			Status:      "active", Public: true,
			CreatedAt: dt(now.AddDate(-8, 0, 0)),
		},
		{
			UID: "proj-k8s", Slug: "kubernetes", Name: "Kubernetes",
			Description: "Production-grade container orchestration",
			Status:      "active", ParentUID: "proj-cncf", Public: true,
			CreatedAt: dt(now.AddDate(-10, 0, 0)),
		},
		{
			UID: "proj-otel", Slug: "opentelemetry", Name: "OpenTelemetry",
			Description: "Observability framework for cloud native software",
			Status:      "active", ParentUID: "proj-cncf", Public: true,
			CreatedAt: dt(now.AddDate(-6, 0, 0)),
		},
		{
			UID: "proj-yocto", Slug: "yocto", Name: "Yocto Project",
			Description: "Custom Linux-based systems for embedded products",
			Status:      "active", Public: true,
			CreatedAt: dt(now.AddDate(-12, 0, 0)),
		},
	}
	for _, p := range projects {
		if err := s.PutProject(p); err != nil {
			return err
		}
		settings := datatypes.ProjectSettings{
			ProjectUID:       p.UID,
			MissionStatement: p.Description,
			Writers:          []string{"admin"},
		}
		if err := s.UpdateProjectSettings(context.Background(), settings); err != nil {
			return err
		}
	}

	committees := []datatypes.Committee{
		{
			UID: "comm-k8s-steering", ProjectUID: "proj-k8s",
			Name: "Steering Committee", Category: "Board",
			EnableVoting: true, Public: true,
		},
		{
			UID: "comm-k8s-security", ProjectUID: "proj-k8s",
			Name: "Security Response Committee", Category: "Technical",
		},
		{
			UID: "comm-otel-gc", ProjectUID: "proj-otel",
			Name: "Governance Committee", Category: "Board",
			EnableVoting: true, Public: true,
		},
	}
	for _, c := range committees {
		if err := put(s.db, prefixCommittee+c.UID, c); err != nil {
			return err
		}
	}

	members := []datatypes.CommitteeMember{
		{
			UID: "seat-1", CommitteeUID: "comm-k8s-steering",
			Username: "jlawrence", FirstName: "Jordan", LastName: "Lawrence",
			Email: "jordan@example.org", Organization: "Example Cloud",
			Role: "Chair", VotingStatus: "Voting Rep",
			StartDate: dt(now.AddDate(-1, 0, 0)), EndDate: dt(now.AddDate(1, 0, 0)),
		},
		{
			UID: "seat-2", CommitteeUID: "comm-k8s-steering",
			Username: "mchen", FirstName: "Morgan", LastName: "Chen",
			Email: "morgan@example.org", Organization: "Example Systems",
			VotingStatus: "Voting Rep",
			StartDate:    dt(now.AddDate(-2, 0, 0)), EndDate: dt(now.AddDate(0, 6, 0)),
		},
		{
			UID: "seat-3", CommitteeUID: "comm-otel-gc",
			Username: "asilva", FirstName: "Alex", LastName: "Silva",
			Email: "alex@example.org", VotingStatus: "Observer",
		},
	}
	for _, m := range members {
		if err := put(s.db, prefixMember+m.CommitteeUID+":"+m.UID, m); err != nil {
			return err
		}
	}

	meetings := []datatypes.Meeting{
		{
			UID: "meet-k8s-weekly", ProjectUID: "proj-k8s",
			Title: "Steering Committee Weekly", Duration: 60,
			StartTime: dt(now.Add(48 * time.Hour)), Timezone: "UTC",
			Recurrence: "weekly", Visibility: "public",
			RecordingEnabled: true,
			CommitteeUIDs:    []string{"comm-k8s-steering"},
		},
		{
			UID: "meet-k8s-security", ProjectUID: "proj-k8s",
			Title: "Security Triage", Duration: 30,
			StartTime: dt(now.Add(24 * time.Hour)), Timezone: "UTC",
			Recurrence: "weekly", Visibility: "private", Restricted: true,
			CommitteeUIDs: []string{"comm-k8s-security"},
		},
		{
			UID: "meet-otel-gc", ProjectUID: "proj-otel",
			Title: "Governance Committee Monthly", Duration: 60,
			StartTime: dt(now.Add(7 * 24 * time.Hour)), Timezone: "America/Los_Angeles",
			Recurrence: "monthly", Visibility: "public",
			CommitteeUIDs: []string{"comm-otel-gc"},
		},
	}
	for _, m := range meetings {
		if err := put(s.db, prefixMeeting+m.UID, m); err != nil {
			return err
		}
	}

	registrants := []datatypes.Registrant{
		{
			UID: "reg-1", MeetingUID: "meet-k8s-weekly",
			Username: "jlawrence", FirstName: "Jordan", LastName: "Lawrence",
			Email: "jordan@example.org", Host: true, Type: "committee",
		},
		{
			UID: "reg-2", MeetingUID: "meet-k8s-weekly",
			Username: "mchen", FirstName: "Morgan", LastName: "Chen",
			Email: "morgan@example.org", Type: "committee",
		},
	}
	for _, r := range registrants {
		if err := put(s.db, prefixRegistrant+r.MeetingUID+":"+r.UID, r); err != nil {
			return err
		}
	}

	if err := s.PutRSVP(datatypes.RSVP{
		UID: "rsvp-1", MeetingUID: "meet-k8s-weekly",
		RegistrantUID: "reg-1", Response: "accepted",
	}); err != nil {
		return err
	}

	past := []datatypes.PastMeeting{
		{
			UID: "past-k8s-1", ProjectUID: "proj-k8s", MeetingUID: "meet-k8s-weekly",
			Title: "Steering Committee Weekly", Duration: 55,
			StartTime:    dt(now.Add(-5 * 24 * time.Hour)),
			RecordingURL: "https://recordings.example.org/past-k8s-1",
			InviteeCount: 9, AttendeeCount: 7,
		},
		{
			UID: "past-otel-1", ProjectUID: "proj-otel", MeetingUID: "meet-otel-gc",
			Title: "Governance Committee Monthly", Duration: 62,
			StartTime:    dt(now.Add(-21 * 24 * time.Hour)),
			InviteeCount: 12, AttendeeCount: 10,
		},
	}
	for _, p := range past {
		if err := s.PutPastMeeting(p); err != nil {
			return err
		}
	}

	participants := []datatypes.Participant{
		{UID: "part-1", PastMeetingUID: "past-k8s-1", Name: "Jordan Lawrence", Email: "jordan@example.org", Attended: true},
		{UID: "part-2", PastMeetingUID: "past-k8s-1", Name: "Morgan Chen", Email: "morgan@example.org", Attended: true},
		{UID: "part-3", PastMeetingUID: "past-k8s-1", Name: "Alex Silva", Email: "alex@example.org"},
	}
	for _, p := range participants {
		if err := s.PutParticipant(p); err != nil {
			return err
		}
	}

	lists := []datatypes.MailingList{
		{
			UID: "ml-k8s-dev", ProjectUID: "proj-k8s", Name: "kubernetes-dev",
			Description: "Development discussion", Type: "discussion",
			Public: true, MemberCount: 4820,
		},
		{
			UID: "ml-k8s-announce", ProjectUID: "proj-k8s", Name: "kubernetes-announce",
			Description: "Release and security announcements", Type: "announcement",
			Public: true, MemberCount: 11250,
		},
	}
	for _, l := range lists {
		if err := put(s.db, prefixMailingList+l.UID, l); err != nil {
			return err
		}
	}

	votes := []datatypes.Vote{
		{
			UID: "vote-closed", ProjectUID: "proj-k8s", CommitteeUID: "comm-k8s-steering",
			Title: "2025 charter amendment", Status: datatypes.VoteStatusClosed,
			DueDate: dt(now.Add(-30 * 24 * time.Hour)), ResponseCount: 7, EligibleCount: 7,
		},
		{
			UID: "vote-open-late", ProjectUID: "proj-k8s", CommitteeUID: "comm-k8s-steering",
			Title: "Meeting cadence change", Status: datatypes.VoteStatusOpen,
			DueDate: dt(now.Add(14 * 24 * time.Hour)), ResponseCount: 2, EligibleCount: 7,
		},
		{
			UID: "vote-open-soon", ProjectUID: "proj-k8s", CommitteeUID: "comm-k8s-steering",
			Title: "Steering election", Status: datatypes.VoteStatusOpen,
			DueDate: dt(now.Add(3 * 24 * time.Hour)), ResponseCount: 5, EligibleCount: 7,
		},
		{
			UID: "vote-submitted", ProjectUID: "proj-k8s", CommitteeUID: "comm-k8s-steering",
			Title: "Budget approval", Status: datatypes.VoteStatusSubmitted,
			DueDate: dt(now.Add(7 * 24 * time.Hour)), ResponseCount: 7, EligibleCount: 7,
		},
	}
	for _, v := range votes {
		if err := put(s.db, prefixVote+v.UID, v); err != nil {
			return err
		}
	}

	surveys := []datatypes.Survey{
		{
			UID: "survey-1", ProjectUID: "proj-k8s",
			Title: "Contributor experience survey", Status: "active",
			DueDate: dt(now.Add(20 * 24 * time.Hour)), SentCount: 300, ResponseCount: 121,
		},
	}
	for _, sv := range surveys {
		if err := put(s.db, prefixSurvey+sv.UID, sv); err != nil {
			return err
		}
	}

	users := []datatypes.User{
		{ID: "u-1", Username: "admin", FirstName: "Admin", LastName: "User", Email: "admin@example.org"},
		{ID: "u-2", Username: "jlawrence", FirstName: "Jordan", LastName: "Lawrence", Email: "jordan@example.org"},
		{ID: "u-3", Username: "mchen", FirstName: "Morgan", LastName: "Chen", Email: "morgan@example.org"},
		{ID: "u-4", Username: "asilva", FirstName: "Alex", LastName: "Silva", Email: "alex@example.org"},
	}
	for _, u := range users {
		if err := s.PutUser(u); err != nil {
			return err
		}
	}

	permissions := map[string][]datatypes.Permission{
		"proj-k8s": {
			{Username: "admin", Role: datatypes.PermissionManage, Scope: "project"},
			{Username: "jlawrence", Role: datatypes.PermissionManage, Scope: "committees"},
			{Username: "asilva", Role: datatypes.PermissionView, Scope: "project"},
		},
		"proj-otel": {
			{Username: "admin", Role: datatypes.PermissionManage, Scope: "project"},
		},
	}
	for projectUID, grants := range permissions {
		for _, grant := range grants {
			if err := put(s.db, prefixPermission+projectUID+":"+grant.Username, grant); err != nil {
				return err
			}
		}
	}

	orgs := []datatypes.Organization{
		{ID: "org-1", Name: "Example Cloud", Domain: "example-cloud.com", Industry: "Cloud Infrastructure"},
		{ID: "org-2", Name: "Example Systems", Domain: "example-systems.io", Industry: "Enterprise Software"},
		{ID: "org-3", Name: "Acme Robotics", Domain: "acme-robotics.dev", Industry: "Robotics"},
	}
	for _, o := range orgs {
		if err := s.PutOrganization(o); err != nil {
			return err
		}
	}

	return nil
}
