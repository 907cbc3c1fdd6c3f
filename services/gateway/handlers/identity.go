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
	"github.com/linuxfoundation/lfx-pcc/services/gateway/middleware"
)

// SearchUsers looks up identity records for the member pickers.
func SearchUsers(identity downstream.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := validation.SanitizeQuery(c.Query("q"))
		users, err := identity.SearchUsers(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.User{})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GetUser returns one identity record.
func GetUser(identity downstream.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if err := validation.ValidateUsername(username); err != nil {
			badParam(c, "username", err)
			return
		}
		user, err := identity.GetUser(c.Request.Context(), username)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// canManage asks the authz provider whether the caller may manage the
// given resource on the project.
func canManage(c *gin.Context, authz extensions.AuthzProvider, projectUID, resource string) bool {
	info := middleware.GetAuthInfo(c)
	if info == nil {
		return false
	}
	err := authz.Authorize(c.Request.Context(), extensions.AuthzRequest{
		Username:   info.Username,
		ProjectUID: projectUID,
		Resource:   resource,
		Action:     "manage",
	})
	return err == nil
}

// ListPermissions returns a project's permission grants along with
// whether the caller may change them. Clients hide the manage actions
// when writer is false.
func ListPermissions(identity downstream.IdentityService, authz extensions.AuthzProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		grants, err := identity.ListPermissions(c.Request.Context(), uid)
		if err != nil {
			grants = []datatypes.Permission{}
		}
		c.JSON(http.StatusOK, gin.H{
			"permissions": grants,
			"writer":      canManage(c, authz, uid, "permissions"),
		})
	}
}

type permissionRequest struct {
	Role  string `json:"role" validate:"required,oneof=view manage"`
	Scope string `json:"scope" validate:"omitempty,oneof=project committees meetings mailing-lists votes settings"`
}

// PutPermission grants or updates a user's role on a project.
func PutPermission(identity downstream.IdentityService, authz extensions.AuthzProvider, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		username := c.Param("username")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUsername(username); err != nil {
			badParam(c, "username", err)
			return
		}
		if !canManage(c, authz, uid, "permissions") {
			c.Error(datatypes.ErrForbidden)
			return
		}
		var req permissionRequest
		if !bindJSON(c, &req) {
			return
		}
		grant := datatypes.Permission{Username: username, Role: req.Role, Scope: req.Scope}
		err := identity.PutPermission(c.Request.Context(), uid, grant)
		recordAudit(c, audit, "permission.put", "permission", username, uid, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, grant)
	}
}

// DeletePermission revokes a user's grant.
func DeletePermission(identity downstream.IdentityService, authz extensions.AuthzProvider, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		username := c.Param("username")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUsername(username); err != nil {
			badParam(c, "username", err)
			return
		}
		if !canManage(c, authz, uid, "permissions") {
			c.Error(datatypes.ErrForbidden)
			return
		}
		err := identity.DeletePermission(c.Request.Context(), uid, username)
		recordAudit(c, audit, "permission.delete", "permission", username, uid, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
