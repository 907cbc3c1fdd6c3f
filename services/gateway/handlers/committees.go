// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// ListCommittees returns a project's committees.
func ListCommittees(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectUID := c.Query("project")
		if projectUID != "" {
			if err := validation.ValidateUID(projectUID); err != nil {
				badParam(c, "project", err)
				return
			}
		}
		committees, err := projects.ListCommittees(c.Request.Context(), projectUID)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Committee{})
			return
		}
		c.JSON(http.StatusOK, committees)
	}
}

// GetCommittee returns one committee.
func GetCommittee(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		committee, err := projects.GetCommittee(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, committee)
	}
}

type committeeRequest struct {
	ProjectUID   string `json:"project_uid" validate:"required"`
	Name         string `json:"name" validate:"required,max=200"`
	Category     string `json:"category" validate:"max=100"`
	Description  string `json:"description" validate:"max=2000"`
	EnableVoting bool   `json:"enable_voting"`
	Public       bool   `json:"public"`
}

func (r committeeRequest) toRecord() datatypes.Committee {
	return datatypes.Committee{
		ProjectUID:   r.ProjectUID,
		Name:         r.Name,
		Category:     r.Category,
		Description:  r.Description,
		EnableVoting: r.EnableVoting,
		Public:       r.Public,
	}
}

// CreateCommittee creates a committee.
func CreateCommittee(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req committeeRequest
		if !bindJSON(c, &req) {
			return
		}
		created, err := projects.CreateCommittee(c.Request.Context(), req.toRecord())
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "committee.create", "committee", resourceID, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateCommittee replaces a committee's mutable fields.
func UpdateCommittee(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req committeeRequest
		if !bindJSON(c, &req) {
			return
		}
		committee := req.toRecord()
		committee.UID = uid
		updated, err := projects.UpdateCommittee(c.Request.Context(), committee)
		recordAudit(c, audit, "committee.update", "committee", uid, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteCommittee deletes a committee and its seats.
func DeleteCommittee(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		err := projects.DeleteCommittee(c.Request.Context(), uid)
		recordAudit(c, audit, "committee.delete", "committee", uid, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ListCommitteeMembers returns a committee's seats.
func ListCommitteeMembers(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		members, err := projects.ListCommitteeMembers(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.CommitteeMember{})
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

type memberRequest struct {
	Username     string `json:"username" validate:"omitempty,max=64"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Organization string `json:"organization" validate:"max=200"`
	JobTitle     string `json:"job_title" validate:"max=200"`
	Role         string `json:"role" validate:"max=100"`
	VotingStatus string `json:"voting_status" validate:"omitempty,oneof='Voting Rep' 'Alternate Voting Rep' Observer None"`
	AppointedBy  string `json:"appointed_by" validate:"max=200"`
}

func (r memberRequest) toRecord(committeeUID string) datatypes.CommitteeMember {
	return datatypes.CommitteeMember{
		CommitteeUID: committeeUID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Organization: r.Organization,
		JobTitle:     r.JobTitle,
		Role:         r.Role,
		VotingStatus: r.VotingStatus,
		AppointedBy:  r.AppointedBy,
	}
}

// AddCommitteeMember appoints a member to a committee.
func AddCommitteeMember(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req memberRequest
		if !bindJSON(c, &req) {
			return
		}
		created, err := projects.AddCommitteeMember(c.Request.Context(), req.toRecord(uid))
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "committee.member.add", "committee_member", resourceID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateCommitteeMember updates a seat.
func UpdateCommitteeMember(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		committeeUID := c.Param("uid")
		memberUID := c.Param("memberUid")
		if err := validation.ValidateUID(committeeUID); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUID(memberUID); err != nil {
			badParam(c, "memberUid", err)
			return
		}
		var req memberRequest
		if !bindJSON(c, &req) {
			return
		}
		member := req.toRecord(committeeUID)
		member.UID = memberUID
		updated, err := projects.UpdateCommitteeMember(c.Request.Context(), member)
		recordAudit(c, audit, "committee.member.update", "committee_member", memberUID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// RemoveCommitteeMember removes a seat.
func RemoveCommitteeMember(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		committeeUID := c.Param("uid")
		memberUID := c.Param("memberUid")
		if err := validation.ValidateUID(committeeUID); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUID(memberUID); err != nil {
			badParam(c, "memberUid", err)
			return
		}
		err := projects.RemoveCommitteeMember(c.Request.Context(), committeeUID, memberUID)
		recordAudit(c, audit, "committee.member.remove", "committee_member", memberUID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
