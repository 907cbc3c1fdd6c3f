// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/pkg/viewstate"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// voteStatusPriority orders the vote dashboard: action-needed first.
var voteStatusPriority = map[string]int{
	datatypes.VoteStatusOpen:      0,
	datatypes.VoteStatusSubmitted: 1,
	datatypes.VoteStatusClosed:    2,
}

// sortVotes orders votes by status priority, then due date ascending so
// the most urgent open vote leads.
func sortVotes(votes []datatypes.Vote) {
	viewstate.SortStable(votes, func(a, b datatypes.Vote) int {
		if c := viewstate.ComparePriority(voteStatusPriority, a.Status, b.Status); c != 0 {
			return c
		}
		return time.Time(a.DueDate).Compare(time.Time(b.DueDate))
	})
}

// ListVotes returns a project's votes in dashboard order, optionally
// narrowed by a free-text filter over title and description.
func ListVotes(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectUID := c.Query("project")
		if projectUID != "" {
			if err := validation.ValidateUID(projectUID); err != nil {
				badParam(c, "project", err)
				return
			}
		}
		votes, err := projects.ListVotes(c.Request.Context(), projectUID)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Vote{})
			return
		}
		votes = viewstate.FilterContains(votes, validation.SanitizeQuery(c.Query("search")), func(v datatypes.Vote) []string {
			return []string{v.Title, v.Description}
		})
		sortVotes(votes)
		c.JSON(http.StatusOK, votes)
	}
}

// GetVote returns one vote.
func GetVote(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		vote, err := projects.GetVote(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, vote)
	}
}

type voteRequest struct {
	ProjectUID   string          `json:"project_uid" validate:"required"`
	CommitteeUID string          `json:"committee_uid"`
	Title        string          `json:"title" validate:"required,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	Status       string          `json:"status" validate:"omitempty,oneof=open submitted closed"`
	DueDate      strfmt.DateTime `json:"due_date"`
}

func (r voteRequest) toRecord() datatypes.Vote {
	return datatypes.Vote{
		ProjectUID:   r.ProjectUID,
		CommitteeUID: r.CommitteeUID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		DueDate:      r.DueDate,
	}
}

// CreateVote opens a poll.
func CreateVote(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voteRequest
		if !bindJSON(c, &req) {
			return
		}
		created, err := projects.CreateVote(c.Request.Context(), req.toRecord())
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "vote.create", "vote", resourceID, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateVote edits a poll (status changes included).
func UpdateVote(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req voteRequest
		if !bindJSON(c, &req) {
			return
		}
		vote := req.toRecord()
		vote.UID = uid
		updated, err := projects.UpdateVote(c.Request.Context(), vote)
		recordAudit(c, audit, "vote.update", "vote", uid, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteVote removes a poll.
func DeleteVote(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		err := projects.DeleteVote(c.Request.Context(), uid)
		recordAudit(c, audit, "vote.delete", "vote", uid, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ListSurveys returns a project's surveys.
func ListSurveys(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectUID := c.Query("project")
		if projectUID != "" {
			if err := validation.ValidateUID(projectUID); err != nil {
				badParam(c, "project", err)
				return
			}
		}
		surveys, err := projects.ListSurveys(c.Request.Context(), projectUID)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Survey{})
			return
		}
		c.JSON(http.StatusOK, surveys)
	}
}
