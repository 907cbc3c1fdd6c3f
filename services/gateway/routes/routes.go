// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package routes wires the gateway's /api surface.
package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/services/flags"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/attachments"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/handlers"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/live"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/middleware"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Projects      downstream.ProjectService
	Meetings      downstream.MeetingService
	Identity      downstream.IdentityService
	Organizations downstream.OrganizationService

	Attachments attachments.Store
	Flags       *flags.Provider
	Hub         *live.Hub
	Options     extensions.ServiceOptions
	Metrics     *middleware.RequestMetrics
	RateLimit   *middleware.RateLimiter
	Registry    *prometheus.Registry
	Log         *slog.Logger
}

// Setup registers every route on the engine.
func Setup(router *gin.Engine, deps Deps) {
	opts := deps.Options.Normalize()
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	router.GET("/health", handlers.HealthCheck)
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	if deps.Metrics != nil {
		api.Use(deps.Metrics.Handler())
	}
	if deps.RateLimit != nil {
		api.Use(deps.RateLimit.Handler())
	}
	api.Use(middleware.Auth(opts.AuthProvider))
	api.Use(middleware.Errors(log))
	{
		projects := api.Group("/projects")
		{
			projects.GET("", handlers.ListProjects(deps.Projects, deps.Meetings))
			projects.GET("/:slug", handlers.GetProject(deps.Projects))
		}
		// Settings and permissions key on project UID, not slug.
		projectAdmin := api.Group("/project")
		{
			projectAdmin.GET("/:uid/settings", handlers.GetProjectSettings(deps.Projects))
			projectAdmin.PUT("/:uid/settings", handlers.UpdateProjectSettings(deps.Projects, opts.AuditLogger))
			projectAdmin.GET("/:uid/permissions", handlers.ListPermissions(deps.Identity, opts.AuthzProvider))
			projectAdmin.PUT("/:uid/permissions/:username", handlers.PutPermission(deps.Identity, opts.AuthzProvider, opts.AuditLogger))
			projectAdmin.DELETE("/:uid/permissions/:username", handlers.DeletePermission(deps.Identity, opts.AuthzProvider, opts.AuditLogger))
		}

		committees := api.Group("/committees")
		{
			committees.GET("", handlers.ListCommittees(deps.Projects))
			committees.GET("/count", handlers.CountCommittees(deps.Projects))
			committees.POST("", handlers.CreateCommittee(deps.Projects, opts.AuditLogger))
			committees.GET("/:uid", handlers.GetCommittee(deps.Projects))
			committees.PUT("/:uid", handlers.UpdateCommittee(deps.Projects, opts.AuditLogger))
			committees.DELETE("/:uid", handlers.DeleteCommittee(deps.Projects, opts.AuditLogger))
			committees.GET("/:uid/members", handlers.ListCommitteeMembers(deps.Projects))
			committees.POST("/:uid/members", handlers.AddCommitteeMember(deps.Projects, opts.AuditLogger))
			committees.PUT("/:uid/members/:memberUid", handlers.UpdateCommitteeMember(deps.Projects, opts.AuditLogger))
			committees.DELETE("/:uid/members/:memberUid", handlers.RemoveCommitteeMember(deps.Projects, opts.AuditLogger))
		}

		meetings := api.Group("/meetings")
		{
			meetings.GET("", handlers.ListMeetings(deps.Meetings))
			meetings.GET("/count", handlers.CountMeetings(deps.Meetings))
			meetings.POST("", handlers.CreateMeeting(deps.Meetings, opts.AuditLogger))
			meetings.GET("/:uid", handlers.GetMeeting(deps.Meetings))
			meetings.PUT("/:uid", handlers.UpdateMeeting(deps.Meetings, opts.AuditLogger))
			meetings.DELETE("/:uid", handlers.DeleteMeeting(deps.Meetings, opts.AuditLogger))
			meetings.GET("/:uid/registrants", handlers.ListRegistrants(deps.Meetings))
			meetings.POST("/:uid/registrants", handlers.AddRegistrant(deps.Meetings, opts.AuditLogger))
			meetings.DELETE("/:uid/registrants/:registrantUid", handlers.RemoveRegistrant(deps.Meetings, opts.AuditLogger))
			meetings.GET("/:uid/rsvps", handlers.ListRSVPs(deps.Meetings))
			meetings.GET("/:uid/attachments", handlers.ListAttachments(deps.Meetings))
			meetings.POST("/:uid/attachments", handlers.UploadAttachment(deps.Meetings, deps.Attachments, opts.AuditLogger))
			meetings.GET("/:uid/attachments/:attachmentUid", handlers.DownloadAttachment(deps.Meetings, deps.Attachments))
			meetings.DELETE("/:uid/attachments/:attachmentUid", handlers.DeleteAttachment(deps.Meetings, deps.Attachments, opts.AuditLogger))
		}

		pastMeetings := api.Group("/past-meetings")
		{
			pastMeetings.GET("", handlers.ListPastMeetings(deps.Meetings))
			pastMeetings.GET("/count", handlers.CountPastMeetings(deps.Meetings))
			pastMeetings.GET("/:uid", handlers.GetPastMeeting(deps.Meetings))
			pastMeetings.GET("/:uid/participants", handlers.ListParticipants(deps.Meetings))
		}

		mailingLists := api.Group("/mailing-lists")
		{
			mailingLists.GET("", handlers.ListMailingLists(deps.Projects))
			mailingLists.GET("/count", handlers.CountMailingLists(deps.Projects))
			mailingLists.POST("", handlers.CreateMailingList(deps.Projects, opts.AuditLogger))
			mailingLists.GET("/:uid", handlers.GetMailingList(deps.Projects))
			mailingLists.PUT("/:uid", handlers.UpdateMailingList(deps.Projects, opts.AuditLogger))
			mailingLists.DELETE("/:uid", handlers.DeleteMailingList(deps.Projects, opts.AuditLogger))
		}

		votes := api.Group("/votes")
		{
			votes.GET("", handlers.ListVotes(deps.Projects))
			votes.GET("/count", handlers.CountVotes(deps.Projects))
			votes.POST("", handlers.CreateVote(deps.Projects, opts.AuditLogger))
			votes.GET("/:uid", handlers.GetVote(deps.Projects))
			votes.PUT("/:uid", handlers.UpdateVote(deps.Projects, opts.AuditLogger))
			votes.DELETE("/:uid", handlers.DeleteVote(deps.Projects, opts.AuditLogger))
		}

		api.GET("/surveys", handlers.ListSurveys(deps.Projects))
		api.GET("/users/search", handlers.SearchUsers(deps.Identity))
		api.GET("/users/:username", handlers.GetUser(deps.Identity))
		api.GET("/organizations/search", handlers.SearchOrganizations(deps.Organizations))
		api.GET("/search", handlers.Search(deps.Projects, deps.Meetings))
		api.GET("/live", live.Dashboard(deps.Projects, deps.Meetings, deps.Hub, log))

		if deps.Flags != nil {
			api.GET("/flags", func(c *gin.Context) {
				c.JSON(200, deps.Flags.All())
			})
		}
	}
}
