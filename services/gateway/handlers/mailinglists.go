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

// ListMailingLists returns a project's mailing lists.
func ListMailingLists(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectUID := c.Query("project")
		if projectUID != "" {
			if err := validation.ValidateUID(projectUID); err != nil {
				badParam(c, "project", err)
				return
			}
		}
		lists, err := projects.ListMailingLists(c.Request.Context(), projectUID)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.MailingList{})
			return
		}
		c.JSON(http.StatusOK, lists)
	}
}

// GetMailingList returns one mailing list.
func GetMailingList(projects downstream.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		list, err := projects.GetMailingList(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

type mailingListRequest struct {
	ProjectUID    string   `json:"project_uid" validate:"required"`
	Name          string   `json:"name" validate:"required,max=100"`
	Description   string   `json:"description" validate:"max=2000"`
	Type          string   `json:"type" validate:"omitempty,oneof=discussion announcement"`
	Public        bool     `json:"public"`
	CommitteeUIDs []string `json:"committee_uids"`
}

func (r mailingListRequest) toRecord() datatypes.MailingList {
	return datatypes.MailingList{
		ProjectUID:    r.ProjectUID,
		Name:          r.Name,
		Description:   r.Description,
		Type:          r.Type,
		Public:        r.Public,
		CommitteeUIDs: r.CommitteeUIDs,
	}
}

// CreateMailingList provisions a list.
func CreateMailingList(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mailingListRequest
		if !bindJSON(c, &req) {
			return
		}
		created, err := projects.CreateMailingList(c.Request.Context(), req.toRecord())
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "mailing_list.create", "mailing_list", resourceID, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateMailingList edits a list.
func UpdateMailingList(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req mailingListRequest
		if !bindJSON(c, &req) {
			return
		}
		list := req.toRecord()
		list.UID = uid
		updated, err := projects.UpdateMailingList(c.Request.Context(), list)
		recordAudit(c, audit, "mailing_list.update", "mailing_list", uid, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteMailingList removes a list.
func DeleteMailingList(projects downstream.ProjectService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		err := projects.DeleteMailingList(c.Request.Context(), uid)
		recordAudit(c, audit, "mailing_list.delete", "mailing_list", uid, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
