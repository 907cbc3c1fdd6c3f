// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/attachments"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/middleware"
)

// maxAttachmentSize bounds uploaded attachment bodies (32 MiB).
const maxAttachmentSize = 32 << 20

// ListMeetings returns meetings filtered by project, committee, and
// free-text search.
func ListMeetings(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := datatypes.MeetingFilter{
			ProjectUID:   c.Query("project"),
			CommitteeUID: c.Query("committee"),
			Search:       validation.SanitizeQuery(c.Query("search")),
		}
		list, err := meetings.ListMeetings(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Meeting{})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetMeeting returns one meeting.
func GetMeeting(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		meeting, err := meetings.GetMeeting(c.Request.Context(), uid)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, meeting)
	}
}

type meetingRequest struct {
	ProjectUID       string          `json:"project_uid" validate:"required"`
	Title            string          `json:"title" validate:"required,max=200"`
	Description      string          `json:"description" validate:"max=2000"`
	StartTime        strfmt.DateTime `json:"start_time" validate:"required"`
	Duration         int             `json:"duration" validate:"required,min=1,max=1440"`
	Timezone         string          `json:"timezone" validate:"max=64"`
	Recurrence       string          `json:"recurrence" validate:"omitempty,oneof=none daily weekly monthly"`
	Visibility       string          `json:"visibility" validate:"omitempty,oneof=public private"`
	Restricted       bool            `json:"restricted"`
	RecordingEnabled bool            `json:"recording_enabled"`
	CommitteeUIDs    []string        `json:"committee_uids"`
}

func (r meetingRequest) toRecord() datatypes.Meeting {
	return datatypes.Meeting{
		ProjectUID:       r.ProjectUID,
		Title:            r.Title,
		Description:      r.Description,
		StartTime:        r.StartTime,
		Duration:         r.Duration,
		Timezone:         r.Timezone,
		Recurrence:       r.Recurrence,
		Visibility:       r.Visibility,
		Restricted:       r.Restricted,
		RecordingEnabled: r.RecordingEnabled,
		CommitteeUIDs:    r.CommitteeUIDs,
	}
}

// CreateMeeting schedules a meeting.
func CreateMeeting(meetings downstream.MeetingService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req meetingRequest
		if !bindJSON(c, &req) {
			return
		}
		created, err := meetings.CreateMeeting(c.Request.Context(), req.toRecord())
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "meeting.create", "meeting", resourceID, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateMeeting reschedules or edits a meeting.
func UpdateMeeting(meetings downstream.MeetingService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req meetingRequest
		if !bindJSON(c, &req) {
			return
		}
		meeting := req.toRecord()
		meeting.UID = uid
		updated, err := meetings.UpdateMeeting(c.Request.Context(), meeting)
		recordAudit(c, audit, "meeting.update", "meeting", uid, req.ProjectUID, err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteMeeting cancels a meeting.
func DeleteMeeting(meetings downstream.MeetingService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		err := meetings.DeleteMeeting(c.Request.Context(), uid)
		recordAudit(c, audit, "meeting.delete", "meeting", uid, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ListRegistrants returns a meeting's registrants.
func ListRegistrants(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		registrants, err := meetings.ListRegistrants(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Registrant{})
			return
		}
		c.JSON(http.StatusOK, registrants)
	}
}

type registrantRequest struct {
	Username  string `json:"username" validate:"omitempty,max=64"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Host      bool   `json:"host"`
}

// AddRegistrant invites a participant to a meeting.
func AddRegistrant(meetings downstream.MeetingService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		var req registrantRequest
		if !bindJSON(c, &req) {
			return
		}
		registrant := datatypes.Registrant{
			MeetingUID: uid,
			Username:   req.Username,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Host:       req.Host,
			Type:       "direct",
		}
		created, err := meetings.AddRegistrant(c.Request.Context(), registrant)
		resourceID := ""
		if created != nil {
			resourceID = created.UID
		}
		recordAudit(c, audit, "meeting.registrant.add", "registrant", resourceID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// RemoveRegistrant uninvites a participant.
func RemoveRegistrant(meetings downstream.MeetingService, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingUID := c.Param("uid")
		registrantUID := c.Param("registrantUid")
		if err := validation.ValidateUID(meetingUID); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUID(registrantUID); err != nil {
			badParam(c, "registrantUid", err)
			return
		}
		err := meetings.RemoveRegistrant(c.Request.Context(), meetingUID, registrantUID)
		recordAudit(c, audit, "meeting.registrant.remove", "registrant", registrantUID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// ListRSVPs returns attendance responses for a meeting.
func ListRSVPs(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		rsvps, err := meetings.ListRSVPs(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.RSVP{})
			return
		}
		c.JSON(http.StatusOK, rsvps)
	}
}

// ListAttachments returns attachment metadata for a meeting.
func ListAttachments(meetings downstream.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		list, err := meetings.ListAttachments(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusOK, []datatypes.Attachment{})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UploadAttachment accepts a multipart file, stores the bytes, and
// registers the metadata with the meeting service.
func UploadAttachment(meetings downstream.MeetingService, files attachments.Store, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Param("uid")
		if err := validation.ValidateUID(uid); err != nil {
			badParam(c, "uid", err)
			return
		}
		header, err := c.FormFile("file")
		if err != nil {
			badParam(c, "file", err)
			return
		}
		if header.Size > maxAttachmentSize {
			c.Error(&datatypes.ValidationError{Fields: map[string]string{
				"file": "File exceeds the 32 MiB limit",
			}})
			return
		}

		username := ""
		if info := middleware.GetAuthInfo(c); info != nil {
			username = info.Username
		}
		record := datatypes.Attachment{
			MeetingUID: uid,
			FileName:   header.Filename,
			FileSize:   header.Size,
			MimeType:   header.Header.Get("Content-Type"),
			UploadedBy: username,
		}
		created, err := meetings.AddAttachment(c.Request.Context(), record)
		if err != nil {
			recordAudit(c, audit, "meeting.attachment.add", "attachment", "", "", err)
			c.Error(err)
			return
		}

		file, err := header.Open()
		if err != nil {
			c.Error(err)
			return
		}
		defer file.Close()
		err = files.Put(c.Request.Context(), uid, created.UID, record.MimeType, file)
		recordAudit(c, audit, "meeting.attachment.add", "attachment", created.UID, "", err)
		if err != nil {
			// Roll back the metadata so the listing never shows a file
			// with no bytes behind it.
			meetings.RemoveAttachment(c.Request.Context(), uid, created.UID)
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// DownloadAttachment streams attachment bytes.
func DownloadAttachment(meetings downstream.MeetingService, files attachments.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingUID := c.Param("uid")
		attachmentUID := c.Param("attachmentUid")
		if err := validation.ValidateUID(meetingUID); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUID(attachmentUID); err != nil {
			badParam(c, "attachmentUid", err)
			return
		}
		reader, err := files.Get(c.Request.Context(), meetingUID, attachmentUID)
		if err != nil {
			c.Error(err)
			return
		}
		defer reader.Close()
		c.Status(http.StatusOK)
		io.Copy(c.Writer, reader)
	}
}

// DeleteAttachment removes the metadata and the stored bytes.
func DeleteAttachment(meetings downstream.MeetingService, files attachments.Store, audit extensions.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingUID := c.Param("uid")
		attachmentUID := c.Param("attachmentUid")
		if err := validation.ValidateUID(meetingUID); err != nil {
			badParam(c, "uid", err)
			return
		}
		if err := validation.ValidateUID(attachmentUID); err != nil {
			badParam(c, "attachmentUid", err)
			return
		}
		err := meetings.RemoveAttachment(c.Request.Context(), meetingUID, attachmentUID)
		recordAudit(c, audit, "meeting.attachment.remove", "attachment", attachmentUID, "", err)
		if err != nil {
			c.Error(err)
			return
		}
		// Bytes are best-effort: orphaned objects are swept offline.
		files.Delete(c.Request.Context(), meetingUID, attachmentUID)
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
