// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

func newProjectClient(t *testing.T, handler http.Handler) *ProjectClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewProjectClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewProjectClient_RejectsBadURL(t *testing.T) {
	_, err := NewProjectClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = NewProjectClient(Config{BaseURL: ""})
	assert.Error(t, err)
}

func TestListProjects_Success(t *testing.T) {
	client := newProjectClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, "p-parent", r.URL.Query().Get("parent"))
		json.NewEncoder(w).Encode([]datatypes.Project{{UID: "p-1", Slug: "cncf", Name: "CNCF"}})
	}))

	projects, err := client.ListProjects(context.Background(), datatypes.ProjectFilter{ParentUID: "p-parent"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "cncf", projects[0].Slug)
}

func TestListMeetings_ForwardsAllFilterParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings", r.URL.Path)
		assert.Equal(t, "p-1", r.URL.Query().Get("project"))
		assert.Equal(t, "c-1", r.URL.Query().Get("committee"))
		assert.Equal(t, "triage", r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode([]datatypes.Meeting{{UID: "m-1"}})
	}))
	t.Cleanup(srv.Close)
	client, err := NewMeetingClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	meetings, err := client.ListMeetings(context.Background(), datatypes.MeetingFilter{
		ProjectUID:   "p-1",
		CommitteeUID: "c-1",
		Search:       "triage",
	})
	require.NoError(t, err)
	require.Len(t, meetings, 1)
}

func TestListProjects_FailureFallsBackToEmpty(t *testing.T) {
	client := newProjectClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	projects, err := client.ListProjects(context.Background(), datatypes.ProjectFilter{})
	require.NoError(t, err, "list reads must not surface errors")
	assert.Empty(t, projects)
	assert.NotNil(t, projects)
}

func TestGetProject_NotFoundMapsToServiceError(t *testing.T) {
	client := newProjectClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProject(context.Background(), "unknown")
	require.Error(t, err)
	se, ok := datatypes.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "PROJECT_NOT_FOUND", se.Code)
}

func TestGetProject_ForbiddenMapsToServiceError(t *testing.T) {
	client := newProjectClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.GetProject(context.Background(), "locked")
	se, ok := datatypes.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", se.Code)
}

func TestCreateCommittee_PostsBodyAndDecodesResponse(t *testing.T) {
	client := newProjectClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/committees", r.URL.Path)
		var committee datatypes.Committee
		require.NoError(t, json.NewDecoder(r.Body).Decode(&committee))
		committee.UID = "c-new"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(committee)
	}))

	created, err := client.CreateCommittee(context.Background(), datatypes.Committee{Name: "TSC", ProjectUID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "c-new", created.UID)
	assert.Equal(t, "TSC", created.Name)
}

func TestToken_AttachedToRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]datatypes.Project{})
	}))
	t.Cleanup(srv.Close)

	client, err := NewProjectClient(Config{BaseURL: srv.URL, Token: "secret-m2m-token"})
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background(), datatypes.ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-m2m-token", gotAuth)
}

func TestIdentityClient_GetUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client, err := NewIdentityClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "ghost")
	se, ok := datatypes.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "USER_NOT_FOUND", se.Code)
}
