// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package live streams a project dashboard over a websocket.
//
// Each connection owns one Session: a viewstate graph whose sources are
// the selected project and whose fetchers load that project's meetings,
// committees, and votes. Every applied update produces one snapshot,
// pushed to the client, so the dashboard reflects exactly the state of
// the graph with no partial frames.
package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-pcc/pkg/viewstate"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// Snapshot is one dashboard frame.
type Snapshot struct {
	ProjectUID string `json:"project_uid"`
	Version    uint64 `json:"version"`

	MeetingsState string              `json:"meetings_state"`
	Meetings      []datatypes.Meeting `json:"meetings"`

	CommitteesState string                `json:"committees_state"`
	Committees      []datatypes.Committee `json:"committees"`

	VotesState string           `json:"votes_state"`
	Votes      []datatypes.Vote `json:"votes"`

	OpenVotes     int `json:"open_votes"`
	NextMeetingIn int `json:"next_meeting_minutes"` // -1 when none scheduled
}

// Session is the dataflow graph behind one dashboard connection.
type Session struct {
	store   *viewstate.Store
	project *viewstate.Signal[string]

	meetings   *viewstate.Fetcher[[]datatypes.Meeting]
	committees *viewstate.Fetcher[[]datatypes.Committee]
	votes      *viewstate.Fetcher[[]datatypes.Vote]

	openVotes   *viewstate.Computed[int]
	nextMeeting *viewstate.Computed[int]

	// dirty coalesces update notifications: the pusher builds one
	// snapshot per wakeup from current state, so a burst of updates
	// yields the newest frame, not every intermediate one.
	dirty chan struct{}

	now func() time.Time
}

// NewSession builds the dashboard graph over the given downstreams.
func NewSession(projects downstream.ProjectService, meetings downstream.MeetingService, log *slog.Logger) *Session {
	store := viewstate.NewStore()
	s := &Session{
		store:   store,
		project: viewstate.NewSignal(store, ""),
		dirty:   make(chan struct{}, 1),
		now:     time.Now,
	}

	s.meetings = viewstate.NewFetcher(store, log, func(ctx context.Context) ([]datatypes.Meeting, error) {
		return meetings.ListMeetings(ctx, datatypes.MeetingFilter{ProjectUID: s.project.Get()})
	})
	s.committees = viewstate.NewFetcher(store, log, func(ctx context.Context) ([]datatypes.Committee, error) {
		return projects.ListCommittees(ctx, s.project.Get())
	})
	s.votes = viewstate.NewFetcher(store, log, func(ctx context.Context) ([]datatypes.Vote, error) {
		return projects.ListVotes(ctx, s.project.Get())
	})

	s.openVotes = viewstate.Derive(store, func() int {
		open := 0
		for _, v := range s.votes.Get().Value {
			if v.Status == datatypes.VoteStatusOpen {
				open++
			}
		}
		return open
	})
	s.nextMeeting = viewstate.Derive(store, func() int {
		next := -1
		now := s.now()
		for _, m := range s.meetings.Get().Value {
			start := time.Time(m.StartTime)
			if start.Before(now) {
				continue
			}
			minutes := int(start.Sub(now).Minutes())
			if next == -1 || minutes < next {
				next = minutes
			}
		}
		return next
	})

	store.Subscribe(func() {
		select {
		case s.dirty <- struct{}{}:
		default:
		}
	})
	return s
}

// Updates signals that at least one update was applied since the last
// receive. Receivers call Snapshot to get the current frame.
func (s *Session) Updates() <-chan struct{} {
	return s.dirty
}

// SelectProject switches the dashboard to a project and triggers
// exactly one refresh of each fetcher. Returns a channel closed when
// all three fetches have completed (superseded or not).
func (s *Session) SelectProject(ctx context.Context, projectUID string) <-chan struct{} {
	s.project.Set(projectUID)
	return s.refresh(ctx)
}

// Refresh re-fetches the current project's data, one refresh per
// fetcher.
func (s *Session) Refresh(ctx context.Context) <-chan struct{} {
	return s.refresh(ctx)
}

func (s *Session) refresh(ctx context.Context) <-chan struct{} {
	dones := []<-chan struct{}{
		s.meetings.Refresh(ctx),
		s.committees.Refresh(ctx),
		s.votes.Refresh(ctx),
	}
	all := make(chan struct{})
	go func() {
		for _, done := range dones {
			<-done
		}
		close(all)
	}()
	return all
}

// Watch subscribes the session to hub write events: each successful
// mutation of the selected project triggers exactly one refresh, so
// the dashboard lists follow edits made through the REST surface.
// Returns a cancel that must be called when the session ends.
func (s *Session) Watch(hub *Hub) (cancel func()) {
	return hub.Subscribe(func(projectUID string) {
		if projectUID != s.project.Get() {
			return
		}
		s.refresh(context.Background())
	})
}

// Snapshot renders the current state of the graph as one frame.
func (s *Session) Snapshot() Snapshot {
	meetings := s.meetings.Get()
	committees := s.committees.Get()
	votes := s.votes.Get()

	return Snapshot{
		ProjectUID:      s.project.Get(),
		Version:         s.store.Version(),
		MeetingsState:   meetings.State.String(),
		Meetings:        orEmpty(meetings.Value),
		CommitteesState: committees.State.String(),
		Committees:      orEmpty(committees.Value),
		VotesState:      votes.State.String(),
		Votes:           orEmpty(votes.Value),
		OpenVotes:       s.openVotes.Get(),
		NextMeetingIn:   s.nextMeeting.Get(),
	}
}

// orEmpty keeps nil slices out of the wire format.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
