// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// countingDownstream serves canned data and counts list calls.
type countingDownstream struct {
	meetingCalls atomic.Int32
	voteCalls    atomic.Int32

	meetings []datatypes.Meeting
	votes    []datatypes.Vote
}

func (d *countingDownstream) ListMeetings(_ context.Context, filter datatypes.MeetingFilter) ([]datatypes.Meeting, error) {
	d.meetingCalls.Add(1)
	return d.meetings, nil
}

func (d *countingDownstream) ListCommittees(_ context.Context, _ string) ([]datatypes.Committee, error) {
	return []datatypes.Committee{{UID: "c-1", Name: "Steering"}}, nil
}

func (d *countingDownstream) ListVotes(_ context.Context, _ string) ([]datatypes.Vote, error) {
	d.voteCalls.Add(1)
	return d.votes, nil
}

func newTestSession(d *countingDownstream) *Session {
	return NewSession(
		projectServiceStub{d},
		meetingServiceStub{d},
		nil,
	)
}

func TestSession_SelectProjectLandsSnapshot(t *testing.T) {
	d := &countingDownstream{
		meetings: []datatypes.Meeting{{UID: "m-1", ProjectUID: "proj-k8s", Title: "Weekly"}},
		votes: []datatypes.Vote{
			{UID: "v-1", Status: datatypes.VoteStatusOpen},
			{UID: "v-2", Status: datatypes.VoteStatusClosed},
		},
	}
	session := newTestSession(d)

	<-session.SelectProject(context.Background(), "proj-k8s")

	snap := session.Snapshot()
	assert.Equal(t, "proj-k8s", snap.ProjectUID)
	assert.Equal(t, "ready", snap.MeetingsState)
	require.Len(t, snap.Meetings, 1)
	assert.Equal(t, 1, snap.OpenVotes)
}

func TestSession_ExactlyOneFetchPerSelect(t *testing.T) {
	d := &countingDownstream{}
	session := newTestSession(d)

	<-session.SelectProject(context.Background(), "proj-k8s")
	<-session.SelectProject(context.Background(), "proj-otel")

	assert.Equal(t, int32(2), d.meetingCalls.Load())
	assert.Equal(t, int32(2), d.voteCalls.Load())
}

func TestSession_UpdatesCoalesce(t *testing.T) {
	d := &countingDownstream{}
	session := newTestSession(d)

	<-session.SelectProject(context.Background(), "proj-k8s")

	// At least one wakeup is pending; draining it empties the channel.
	select {
	case <-session.Updates():
	case <-time.After(time.Second):
		t.Fatal("expected a pending update notification")
	}
	select {
	case <-session.Updates():
		// A second pending wakeup is fine (loading and ready frames),
		// but the channel must not block the subscriber side.
	default:
	}
}

func TestSession_NextMeetingMinutes(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	d := &countingDownstream{
		meetings: []datatypes.Meeting{
			{UID: "past", StartTime: strfmt.DateTime(now.Add(-time.Hour))},
			{UID: "soon", StartTime: strfmt.DateTime(now.Add(90 * time.Minute))},
			{UID: "later", StartTime: strfmt.DateTime(now.Add(48 * time.Hour))},
		},
	}
	session := newTestSession(d)
	session.now = func() time.Time { return now }

	<-session.SelectProject(context.Background(), "proj-k8s")

	assert.Equal(t, 90, session.Snapshot().NextMeetingIn)
}

func TestSession_NoMeetingsMeansNoNext(t *testing.T) {
	session := newTestSession(&countingDownstream{})
	<-session.SelectProject(context.Background(), "proj-k8s")
	assert.Equal(t, -1, session.Snapshot().NextMeetingIn)
}

func TestDashboard_WebsocketRoundTrip(t *testing.T) {
	d := &countingDownstream{
		meetings: []datatypes.Meeting{{UID: "m-1", Title: "Weekly"}},
		votes:    []datatypes.Vote{{UID: "v-1", Status: datatypes.VoteStatusOpen}},
	}
	router := gin.New()
	router.GET("/api/live", Dashboard(projectServiceStub{d}, meetingServiceStub{d}, nil, nil))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(map[string]string{
		"action":      "select_project",
		"project_uid": "proj-k8s",
	}))

	// Frames arrive until the ready snapshot lands.
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.True(t, time.Now().Before(deadline), "no ready snapshot before deadline")
		ws.SetReadDeadline(time.Now().Add(time.Second))
		var snap Snapshot
		require.NoError(t, ws.ReadJSON(&snap))
		if snap.MeetingsState == "ready" && snap.VotesState == "ready" {
			assert.Equal(t, "proj-k8s", snap.ProjectUID)
			assert.Equal(t, 1, snap.OpenVotes)
			require.Len(t, snap.Meetings, 1)
			return
		}
	}
}

// Error replies and snapshot pushes share one connection; hammering
// both paths at once must leave the session serving. Run with -race.
func TestDashboard_ConcurrentRepliesAndSnapshots(t *testing.T) {
	d := &countingDownstream{
		meetings: []datatypes.Meeting{{UID: "m-1", Title: "Weekly"}},
		votes:    []datatypes.Vote{{UID: "v-1", Status: datatypes.VoteStatusOpen}},
	}
	router := gin.New()
	router.GET("/api/live", Dashboard(projectServiceStub{d}, meetingServiceStub{d}, nil, nil))
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer ws.Close()

	sawError := make(chan struct{}, 1)
	go func() {
		for {
			var frame map[string]any
			if err := ws.ReadJSON(&frame); err != nil {
				return
			}
			if _, ok := frame["error"]; ok {
				select {
				case sawError <- struct{}{}:
				default:
				}
			}
		}
	}()

	for i := 0; i < 200; i++ {
		require.NoError(t, ws.WriteJSON(map[string]string{
			"action":      "select_project",
			"project_uid": "proj-k8s",
		}))
		require.NoError(t, ws.WriteJSON(map[string]string{"action": "bogus"}))
	}

	select {
	case <-sawError:
	case <-time.After(3 * time.Second):
		t.Fatal("no error reply arrived")
	}
	// The connection still accepts actions after the burst.
	assert.NoError(t, ws.WriteJSON(map[string]string{"action": "refresh"}))
}

// The stubs adapt countingDownstream to the full interfaces; only the
// methods the session exercises are real.

type projectServiceStub struct{ d *countingDownstream }

func (s projectServiceStub) ListProjects(_ context.Context, _ datatypes.ProjectFilter) ([]datatypes.Project, error) {
	return nil, nil
}
func (s projectServiceStub) GetProject(_ context.Context, _ string) (*datatypes.Project, error) {
	return nil, datatypes.ErrProjectNotFound
}
func (s projectServiceStub) GetProjectSettings(_ context.Context, _ string) (*datatypes.ProjectSettings, error) {
	return nil, datatypes.ErrProjectNotFound
}
func (s projectServiceStub) UpdateProjectSettings(_ context.Context, _ datatypes.ProjectSettings) error {
	return nil
}
func (s projectServiceStub) ListCommittees(ctx context.Context, projectUID string) ([]datatypes.Committee, error) {
	return s.d.ListCommittees(ctx, projectUID)
}
func (s projectServiceStub) GetCommittee(_ context.Context, _ string) (*datatypes.Committee, error) {
	return nil, datatypes.ErrCommitteeNotFound
}
func (s projectServiceStub) CreateCommittee(_ context.Context, c datatypes.Committee) (*datatypes.Committee, error) {
	return &c, nil
}
func (s projectServiceStub) UpdateCommittee(_ context.Context, c datatypes.Committee) (*datatypes.Committee, error) {
	return &c, nil
}
func (s projectServiceStub) DeleteCommittee(_ context.Context, _ string) error { return nil }
func (s projectServiceStub) ListCommitteeMembers(_ context.Context, _ string) ([]datatypes.CommitteeMember, error) {
	return nil, nil
}
func (s projectServiceStub) AddCommitteeMember(_ context.Context, m datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	return &m, nil
}
func (s projectServiceStub) UpdateCommitteeMember(_ context.Context, m datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	return &m, nil
}
func (s projectServiceStub) RemoveCommitteeMember(_ context.Context, _, _ string) error { return nil }
func (s projectServiceStub) ListMailingLists(_ context.Context, _ string) ([]datatypes.MailingList, error) {
	return nil, nil
}
func (s projectServiceStub) GetMailingList(_ context.Context, _ string) (*datatypes.MailingList, error) {
	return nil, datatypes.ErrMailingListNotFound
}
func (s projectServiceStub) CreateMailingList(_ context.Context, l datatypes.MailingList) (*datatypes.MailingList, error) {
	return &l, nil
}
func (s projectServiceStub) UpdateMailingList(_ context.Context, l datatypes.MailingList) (*datatypes.MailingList, error) {
	return &l, nil
}
func (s projectServiceStub) DeleteMailingList(_ context.Context, _ string) error { return nil }
func (s projectServiceStub) ListVotes(ctx context.Context, projectUID string) ([]datatypes.Vote, error) {
	return s.d.ListVotes(ctx, projectUID)
}
func (s projectServiceStub) GetVote(_ context.Context, _ string) (*datatypes.Vote, error) {
	return nil, datatypes.ErrVoteNotFound
}
func (s projectServiceStub) CreateVote(_ context.Context, v datatypes.Vote) (*datatypes.Vote, error) {
	return &v, nil
}
func (s projectServiceStub) UpdateVote(_ context.Context, v datatypes.Vote) (*datatypes.Vote, error) {
	return &v, nil
}
func (s projectServiceStub) DeleteVote(_ context.Context, _ string) error { return nil }
func (s projectServiceStub) ListSurveys(_ context.Context, _ string) ([]datatypes.Survey, error) {
	return nil, nil
}

type meetingServiceStub struct{ d *countingDownstream }

func (s meetingServiceStub) ListMeetings(ctx context.Context, filter datatypes.MeetingFilter) ([]datatypes.Meeting, error) {
	return s.d.ListMeetings(ctx, filter)
}
func (s meetingServiceStub) GetMeeting(_ context.Context, _ string) (*datatypes.Meeting, error) {
	return nil, datatypes.ErrMeetingNotFound
}
func (s meetingServiceStub) CreateMeeting(_ context.Context, m datatypes.Meeting) (*datatypes.Meeting, error) {
	return &m, nil
}
func (s meetingServiceStub) UpdateMeeting(_ context.Context, m datatypes.Meeting) (*datatypes.Meeting, error) {
	return &m, nil
}
func (s meetingServiceStub) DeleteMeeting(_ context.Context, _ string) error { return nil }
func (s meetingServiceStub) ListRegistrants(_ context.Context, _ string) ([]datatypes.Registrant, error) {
	return nil, nil
}
func (s meetingServiceStub) AddRegistrant(_ context.Context, r datatypes.Registrant) (*datatypes.Registrant, error) {
	return &r, nil
}
func (s meetingServiceStub) RemoveRegistrant(_ context.Context, _, _ string) error { return nil }
func (s meetingServiceStub) ListRSVPs(_ context.Context, _ string) ([]datatypes.RSVP, error) {
	return nil, nil
}
func (s meetingServiceStub) ListPastMeetings(_ context.Context, _ string) ([]datatypes.PastMeeting, error) {
	return nil, nil
}
func (s meetingServiceStub) GetPastMeeting(_ context.Context, _ string) (*datatypes.PastMeeting, error) {
	return nil, datatypes.ErrMeetingNotFound
}
func (s meetingServiceStub) ListParticipants(_ context.Context, _ string) ([]datatypes.Participant, error) {
	return nil, nil
}
func (s meetingServiceStub) ListAttachments(_ context.Context, _ string) ([]datatypes.Attachment, error) {
	return nil, nil
}
func (s meetingServiceStub) AddAttachment(_ context.Context, a datatypes.Attachment) (*datatypes.Attachment, error) {
	return &a, nil
}
func (s meetingServiceStub) RemoveAttachment(_ context.Context, _, _ string) error { return nil }
