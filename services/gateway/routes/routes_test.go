// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newDemoRouter assembles the full route table over the seeded demo
// store, the same wiring the gateway uses in demo mode.
func newDemoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	st, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	require.NoError(t, st.Seed())
	t.Cleanup(func() { st.Close() })

	router := gin.New()
	Setup(router, Deps{
		Projects:      st,
		Meetings:      st,
		Identity:      st,
		Organizations: st,
	})
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_HealthAndProjects(t *testing.T) {
	router := newDemoRouter(t)

	assert.Equal(t, http.StatusOK, get(router, "/health").Code)

	w := get(router, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	var projects []datatypes.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.NotEmpty(t, projects)
}

func TestRoutes_UnknownSlugContract(t *testing.T) {
	router := newDemoRouter(t)

	w := get(router, "/api/projects/no-such-project")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found","code":"PROJECT_NOT_FOUND"}`, w.Body.String())
}

func TestRoutes_MeetingSearchFilters(t *testing.T) {
	router := newDemoRouter(t)

	w := get(router, "/api/meetings?search=security")
	require.Equal(t, http.StatusOK, w.Code)
	var meetings []datatypes.Meeting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meetings))
	require.Len(t, meetings, 1)
	assert.Equal(t, "Security Triage", meetings[0].Title)
}

func TestRoutes_CountEndpoints(t *testing.T) {
	router := newDemoRouter(t)

	w := get(router, "/api/committees/count?project=proj-k8s")
	require.Equal(t, http.StatusOK, w.Code)
	var committees struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &committees))
	assert.Equal(t, 2, committees.Count)

	w = get(router, "/api/votes/count?project=proj-k8s")
	require.Equal(t, http.StatusOK, w.Code)
	var votes struct {
		Count int `json:"count"`
		Open  int `json:"open"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &votes))
	assert.Equal(t, 4, votes.Count)
	assert.Equal(t, 2, votes.Open)
}

func TestRoutes_UsersSearchAndLookupCoexist(t *testing.T) {
	router := newDemoRouter(t)

	assert.Equal(t, http.StatusOK, get(router, "/api/users/search?q=chen").Code)
	assert.Equal(t, http.StatusOK, get(router, "/api/users/jlawrence").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/users/nobody-here").Code)
}
