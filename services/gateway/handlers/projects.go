// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// enrichConcurrency bounds the per-project count lookups during list
// enrichment so a large project tree does not stampede the downstream.
const enrichConcurrency = 8

// ListProjects returns the project list, enriched with committee and
// meeting counts. Enrichment is best-effort: a failed count lookup
// leaves the count at zero rather than failing the listing.
func ListProjects(projects downstream.ProjectService, meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := datatypes.ProjectFilter{
			ParentUID: c.Query("parent"),
			Search:    validation.SanitizeQuery(c.Query("search")),
		}
		list, err := projects.ListProjects(c.Request.Context(), filter)
		if err != nil {
			slog.Warn("project list failed, serving empty", "error", err)
			c.JSON(http.StatusOK, []datatypes.Project{})
			return
		}

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.SetLimit(enrichConcurrency)
		for i := range list {
			g.Go(func() error {
				committees, err := projects.ListCommittees(ctx, list[i].UID)
				if err == nil {
					list[i].CommitteeCount = len(committees)
				}
				ms, err := meetings.ListMeetings(ctx, datatypes.MeetingFilter{ProjectUID: list[i].UID})
				if err == nil {
					list[i].MeetingCount = len(ms)
				}
				return nil
			})
		}
		g.Wait()

		c.JSON(http.StatusOK, list)
	}
}

// GetProject returns one project by slug.
func GetProject(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if err := validation.ValidateSlug(slug); err != nil {
			badParam(c, "slug", err)
			return
		}
		project, err := projects.GetProject(c.Request.Context(), slug)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// GetProjectSettings returns the per-project settings record.
func GetProjectSettings(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		settings, err := projects.GetProjectSettings(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

type updateSettingsRequest struct {
	MissionStatement string   `json:"mission_statement" validate:"max=2000"`
	AnnouncementURL  string   `json:"announcement_url" validate:"omitempty,url"`
	Auditors         []string `json:"auditors"`
	Writers          []string `json:"writers"`
}

// UpdateProjectSettings replaces the settings record.
func UpdateProjectSettings(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req updateSettingsRequest
		if !bindJSON(c, &req) {
			return
		}
		settings := datatypes.ProjectSettings{
			ProjectUID:       uid,
			MissionStatement: req.MissionStatement,
			AnnouncementURL:  req.AnnouncementURL,
			Auditors:         req.Auditors,
			Writers:          req.Writers,
		}
		err := projects.UpdateProjectSettings(c.Request.Context(), settings)
		recordAudit(c, audit, "project.settings.update", "project", uid, uid, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
