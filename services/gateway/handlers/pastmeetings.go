// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// ListPastMeetings returns completed meeting occurrences for a project.
func ListPastMeetings(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectUID := c.Query("project")
		if projectUID != "" {
			if err := validation.ValidateUID(projectUID); err != nil {
				badParam(c, "project", err)
				return
			}
		}
		past, err := meetings.ListPastMeetings(c.Request.Context(), projectUID)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.PastMeeting{})
			return
		}
		c.JSON(http.StatusOK, past)
	}
}

// GetPastMeeting returns one past occurrence.
func GetPastMeeting(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		past, err := meetings.GetPastMeeting(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, past)
	}
}

// ListParticipants returns the attendance rows of a past occurrence.
func ListParticipants(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		participants, err := meetings.ListParticipants(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Participant{})
			return
		}
		c.JSON(http.StatusOK, participants)
	}
}
