// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// Count endpoints answer "how many" without shipping the records.
// They ride the list reads, so they inherit the same read policy: a
// failed read counts as zero, never an error.

// CountCommittees returns the committee count for a project.
func CountCommittees(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := projects.ListCommittees(c.Request.Context(), c.Query("project"))
		if err != nil {
			list = nil
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list)})
	}
}

// CountMeetings returns the meeting count for a project.
func CountMeetings(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meetings.ListMeetings(c.Request.Context(), datatypes.MeetingFilter{
			ProjectUID: c.Query("project"),
		})
		if err != nil {
			list = nil
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list)})
	}
}

// CountPastMeetings returns the past-meeting count for a project.
func CountPastMeetings(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meetings.ListPastMeetings(c.Request.Context(), c.Query("project"))
		if err != nil {
			list = nil
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list)})
	}
}

// CountMailingLists returns the mailing-list count for a project.
func CountMailingLists(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := projects.ListMailingLists(c.Request.Context(), c.Query("project"))
		if err != nil {
			list = nil
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list)})
	}
}

// CountVotes returns the vote count for a project, split by status.
func CountVotes(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := projects.ListVotes(c.Request.Context(), c.Query("project"))
		if err != nil {
			list = nil
		}
		open := 0
		for _, v := range list {
			if v.Status == datatypes.VoteStatusOpen {
				open++
			}
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list), "open": open})
	}
}
