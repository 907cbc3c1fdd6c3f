// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/pkg/viewstate"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// SearchOrganizations looks up company records for the org pickers.
func SearchOrganizations(orgs downstream.OrganizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := validation.SanitizeQuery(c.Query("name"))
		results, err := orgs.SearchOrganizations(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Organization{})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

// Search fans out one query across projects, committees, and meetings
// and merges the hits. Each leg is best-effort: a failed leg
// contributes nothing rather than failing the search.
func Search(projects downstream.ProjectService, meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := validation.SanitizeQuery(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusOK, []datatypes.SearchResult{})
			return
		}

		var mu sync.Mutex
		results := []datatypes.SearchResult{}
		add := func(rows []datatypes.SearchResult) {
			mu.Lock()
			results = append(results, rows...)
			mu.Unlock()
		}

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			list, err := projects.ListProjects(ctx, datatypes.ProjectFilter{Search: query})
			if err != nil {
				return nil
			}
			rows := make([]datatypes.SearchResult, 0, len(list))
			for _, p := range list {
				rows = append(rows, datatypes.SearchResult{Type: "project", UID: p.UID, Name: p.Name, Slug: p.Slug})
			}
			add(rows)
			return nil
		})
		g.Go(func() error {
			list, err := projects.ListCommittees(ctx, "")
			if err != nil {
				return nil
			}
			matched := viewstate.FilterContains(list, query, func(cm datatypes.Committee) []string {
				return []string{cm.Name, cm.Description}
			})
			rows := make([]datatypes.SearchResult, 0, len(matched))
			for _, cm := range matched {
				rows = append(rows, datatypes.SearchResult{Type: "committee", UID: cm.UID, Name: cm.Name})
			}
			add(rows)
			return nil
		})
		g.Go(func() error {
			list, err := meetings.ListMeetings(ctx, datatypes.MeetingFilter{Search: query})
			if err != nil {
				return nil
			}
			matched := viewstate.FilterContains(list, query, func(m datatypes.Meeting) []string {
				return []string{m.Title, m.Description}
			})
			rows := make([]datatypes.SearchResult, 0, len(matched))
			for _, m := range matched {
				rows = append(rows, datatypes.SearchResult{Type: "meeting", UID: m.UID, Name: m.Title})
			}
			add(rows)
			return nil
		})
		g.Wait()

		// Deterministic order: projects, committees, meetings, then name.
		typePriority := map[string]int{"project": 0, "committee": 1, "meeting": 2}
		viewstate.SortStable(results, func(a, b datatypes.SearchResult) int {
			if c := viewstate.ComparePriority(typePriority, a.Type, b.Type); c != 0 {
				return c
			}
			switch {
			case a.Name < b.Name:
				return -1
			case a.Name > b.Name:
				return 1
			default:
				return 0
			}
		})
		c.JSON(http.StatusOK, results)
	}
}
