// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package clients

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// MeetingClient fronts the message-bus-backed meeting service through
// its REST bridge.
type MeetingClient struct {
	rest *rest
}

var _ downstream.MeetingService = (*MeetingClient)(nil)

// NewMeetingClient builds a client for the meeting service.
func NewMeetingClient(cfg Config) (*MeetingClient, error) {
	r, err := newREST(cfg)
	if err != nil {
		return nil, err
	}
	return &MeetingClient{rest: r}, nil
}

func (c *MeetingClient) ListMeetings(ctx context.Context, filter datatypes.MeetingFilter) ([]datatypes.Meeting, error) {
	query := url.Values{}
	if filter.ProjectUID != "" {
		query.Set("project", filter.ProjectUID)
	}
	if filter.CommitteeUID != "" {
		query.Set("committee", filter.CommitteeUID)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var meetings []datatypes.Meeting
	if err := c.rest.get(ctx, "/meetings", query, &meetings); err != nil {
		return listFallback[datatypes.Meeting](c.rest.log, "meetings", err), nil
	}
	return meetings, nil
}

func (c *MeetingClient) GetMeeting(ctx context.Context, uid string) (*datatypes.Meeting, error) {
	var meeting datatypes.Meeting
	if err := c.rest.get(ctx, "/meetings/"+url.PathEscape(uid), nil, &meeting); err != nil {
		return nil, mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return &meeting, nil
}

func (c *MeetingClient) CreateMeeting(ctx context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error) {
	var created datatypes.Meeting
	if err := c.rest.post(ctx, "/meetings", meeting, &created); err != nil {
		return nil, mapStatus(err, nil)
	}
	return &created, nil
}

func (c *MeetingClient) UpdateMeeting(ctx context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error) {
	var updated datatypes.Meeting
	if err := c.rest.put(ctx, "/meetings/"+url.PathEscape(meeting.UID), meeting, &updated); err != nil {
		return nil, mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return &updated, nil
}

func (c *MeetingClient) DeleteMeeting(ctx context.Context, uid string) error {
	if err := c.rest.delete(ctx, "/meetings/"+url.PathEscape(uid)); err != nil {
		return mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return nil
}

func (c *MeetingClient) ListRegistrants(ctx context.Context, meetingUID string) ([]datatypes.Registrant, error) {
	var registrants []datatypes.Registrant
	if err := c.rest.get(ctx, "/meetings/"+url.PathEscape(meetingUID)+"/registrants", nil, &registrants); err != nil {
		return listFallback[datatypes.Registrant](c.rest.log, "registrants", err), nil
	}
	return registrants, nil
}

func (c *MeetingClient) AddRegistrant(ctx context.Context, registrant datatypes.Registrant) (*datatypes.Registrant, error) {
	var created datatypes.Registrant
	path := "/meetings/" + url.PathEscape(registrant.MeetingUID) + "/registrants"
	if err := c.rest.post(ctx, path, registrant, &created); err != nil {
		return nil, mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return &created, nil
}

func (c *MeetingClient) RemoveRegistrant(ctx context.Context, meetingUID, registrantUID string) error {
	path := "/meetings/" + url.PathEscape(meetingUID) + "/registrants/" + url.PathEscape(registrantUID)
	if err := c.rest.delete(ctx, path); err != nil {
		return mapStatus(err, datatypes.ErrRegistrantNotFound)
	}
	return nil
}

func (c *MeetingClient) ListRSVPs(ctx context.Context, meetingUID string) ([]datatypes.RSVP, error) {
	var rsvps []datatypes.RSVP
	if err := c.rest.get(ctx, "/meetings/"+url.PathEscape(meetingUID)+"/rsvps", nil, &rsvps); err != nil {
		return listFallback[datatypes.RSVP](c.rest.log, "rsvps", err), nil
	}
	return rsvps, nil
}

func (c *MeetingClient) ListPastMeetings(ctx context.Context, projectUID string) ([]datatypes.PastMeeting, error) {
	query := url.Values{"project": []string{projectUID}}
	var past []datatypes.PastMeeting
	if err := c.rest.get(ctx, "/past-meetings", query, &past); err != nil {
		return listFallback[datatypes.PastMeeting](c.rest.log, "past meetings", err), nil
	}
	return past, nil
}

func (c *MeetingClient) GetPastMeeting(ctx context.Context, uid string) (*datatypes.PastMeeting, error) {
	var past datatypes.PastMeeting
	if err := c.rest.get(ctx, "/past-meetings/"+url.PathEscape(uid), nil, &past); err != nil {
		return nil, mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return &past, nil
}

func (c *MeetingClient) ListParticipants(ctx context.Context, pastMeetingUID string) ([]datatypes.Participant, error) {
	var participants []datatypes.Participant
	path := "/past-meetings/" + url.PathEscape(pastMeetingUID) + "/participants"
	if err := c.rest.get(ctx, path, nil, &participants); err != nil {
		return listFallback[datatypes.Participant](c.rest.log, "participants", err), nil
	}
	return participants, nil
}

func (c *MeetingClient) ListAttachments(ctx context.Context, meetingUID string) ([]datatypes.Attachment, error) {
	var attachments []datatypes.Attachment
	if err := c.rest.get(ctx, "/meetings/"+url.PathEscape(meetingUID)+"/attachments", nil, &attachments); err != nil {
		return listFallback[datatypes.Attachment](c.rest.log, "attachments", err), nil
	}
	return attachments, nil
}

func (c *MeetingClient) AddAttachment(ctx context.Context, attachment datatypes.Attachment) (*datatypes.Attachment, error) {
	var created datatypes.Attachment
	path := "/meetings/" + url.PathEscape(attachment.MeetingUID) + "/attachments"
	if err := c.rest.post(ctx, path, attachment, &created); err != nil {
		return nil, mapStatus(err, datatypes.ErrMeetingNotFound)
	}
	return &created, nil
}

func (c *MeetingClient) RemoveAttachment(ctx context.Context, meetingUID, attachmentUID string) error {
	path := "/meetings/" + url.PathEscape(meetingUID) + "/attachments/" + url.PathEscape(attachmentUID)
	if err := c.rest.delete(ctx, path); err != nil {
		return mapStatus(err, datatypes.ErrAttachmentNotFound)
	}
	return nil
}
