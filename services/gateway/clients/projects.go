// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package clients

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// ProjectClient fronts the Postgres-backed project data service.
type ProjectClient struct {
	rest *rest
}

var _ downstream.ProjectService = (*ProjectClient)(nil)

// NewProjectClient builds a client for the project service.
func NewProjectClient(cfg Config) (*ProjectClient, error) {
	r, err := newREST(cfg)
	if err != nil {
		return nil, err
	}
	return &ProjectClient{rest: r}, nil
}

func (c *ProjectClient) ListProjects(ctx context.Context, filter datatypes.ProjectFilter) ([]datatypes.Project, error) {
	query := url.Values{}
	if filter.ParentUID != "" {
		query.Set("parent", filter.ParentUID)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var projects []datatypes.Project
	if err := c.rest.get(ctx, "/projects", query, &projects); err != nil {
		return listFallback[datatypes.Project](c.rest.log, "projects", err), nil
	}
	return projects, nil
}

func (c *ProjectClient) GetProject(ctx context.Context, slug string) (*datatypes.Project, error) {
	var project datatypes.Project
	if err := c.rest.get(ctx, "/projects/"+url.PathEscape(slug), nil, &project); err != nil {
		return nil, mapStatus(err, datatypes.ErrProjectNotFound)
	}
	return &project, nil
}

func (c *ProjectClient) GetProjectSettings(ctx context.Context, projectUID string) (*datatypes.ProjectSettings, error) {
	var settings datatypes.ProjectSettings
	if err := c.rest.get(ctx, "/projects/"+url.PathEscape(projectUID)+"/settings", nil, &settings); err != nil {
		return nil, mapStatus(err, datatypes.ErrProjectNotFound)
	}
	return &settings, nil
}

func (c *ProjectClient) UpdateProjectSettings(ctx context.Context, settings datatypes.ProjectSettings) error {
	err := c.rest.put(ctx, "/projects/"+url.PathEscape(settings.ProjectUID)+"/settings", settings, nil)
	if err != nil {
		return mapStatus(err, datatypes.ErrProjectNotFound)
	}
	return nil
}

func (c *ProjectClient) ListCommittees(ctx context.Context, projectUID string) ([]datatypes.Committee, error) {
	query := url.Values{"project": []string{projectUID}}
	var committees []datatypes.Committee
	if err := c.rest.get(ctx, "/committees", query, &committees); err != nil {
		return listFallback[datatypes.Committee](c.rest.log, "committees", err), nil
	}
	return committees, nil
}

func (c *ProjectClient) GetCommittee(ctx context.Context, uid string) (*datatypes.Committee, error) {
	var committee datatypes.Committee
	if err := c.rest.get(ctx, "/committees/"+url.PathEscape(uid), nil, &committee); err != nil {
		return nil, mapStatus(err, datatypes.ErrCommitteeNotFound)
	}
	return &committee, nil
}

func (c *ProjectClient) CreateCommittee(ctx context.Context, committee datatypes.Committee) (*datatypes.Committee, error) {
	var created datatypes.Committee
	if err := c.rest.post(ctx, "/committees", committee, &created); err != nil {
		return nil, mapStatus(err, nil)
	}
	return &created, nil
}

func (c *ProjectClient) UpdateCommittee(ctx context.Context, committee datatypes.Committee) (*datatypes.Committee, error) {
	var updated datatypes.Committee
	if err := c.rest.put(ctx, "/committees/"+url.PathEscape(committee.UID), committee, &updated); err != nil {
		return nil, mapStatus(err, datatypes.ErrCommitteeNotFound)
	}
	return &updated, nil
}

func (c *ProjectClient) DeleteCommittee(ctx context.Context, uid string) error {
	if err := c.rest.delete(ctx, "/committees/"+url.PathEscape(uid)); err != nil {
		return mapStatus(err, datatypes.ErrCommitteeNotFound)
	}
	return nil
}

func (c *ProjectClient) ListCommitteeMembers(ctx context.Context, committeeUID string) ([]datatypes.CommitteeMember, error) {
	var members []datatypes.CommitteeMember
	if err := c.rest.get(ctx, "/committees/"+url.PathEscape(committeeUID)+"/members", nil, &members); err != nil {
		return listFallback[datatypes.CommitteeMember](c.rest.log, "committee members", err), nil
	}
	return members, nil
}

func (c *ProjectClient) AddCommitteeMember(ctx context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	var created datatypes.CommitteeMember
	err := c.rest.post(ctx, "/committees/"+url.PathEscape(member.CommitteeUID)+"/members", member, &created)
	if err != nil {
		return nil, mapStatus(err, datatypes.ErrCommitteeNotFound)
	}
	return &created, nil
}

func (c *ProjectClient) UpdateCommitteeMember(ctx context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	var updated datatypes.CommitteeMember
	path := "/committees/" + url.PathEscape(member.CommitteeUID) + "/members/" + url.PathEscape(member.UID)
	if err := c.rest.put(ctx, path, member, &updated); err != nil {
		return nil, mapStatus(err, datatypes.ErrRegistrantNotFound)
	}
	return &updated, nil
}

func (c *ProjectClient) RemoveCommitteeMember(ctx context.Context, committeeUID, memberUID string) error {
	path := "/committees/" + url.PathEscape(committeeUID) + "/members/" + url.PathEscape(memberUID)
	if err := c.rest.delete(ctx, path); err != nil {
		return mapStatus(err, datatypes.ErrCommitteeNotFound)
	}
	return nil
}

func (c *ProjectClient) ListMailingLists(ctx context.Context, projectUID string) ([]datatypes.MailingList, error) {
	query := url.Values{"project": []string{projectUID}}
	var lists []datatypes.MailingList
	if err := c.rest.get(ctx, "/mailing-lists", query, &lists); err != nil {
		return listFallback[datatypes.MailingList](c.rest.log, "mailing lists", err), nil
	}
	return lists, nil
}

func (c *ProjectClient) GetMailingList(ctx context.Context, uid string) (*datatypes.MailingList, error) {
	var list datatypes.MailingList
	if err := c.rest.get(ctx, "/mailing-lists/"+url.PathEscape(uid), nil, &list); err != nil {
		return nil, mapStatus(err, datatypes.ErrMailingListNotFound)
	}
	return &list, nil
}

func (c *ProjectClient) CreateMailingList(ctx context.Context, list datatypes.MailingList) (*datatypes.MailingList, error) {
	var created datatypes.MailingList
	if err := c.rest.post(ctx, "/mailing-lists", list, &created); err != nil {
		return nil, mapStatus(err, nil)
	}
	return &created, nil
}

func (c *ProjectClient) UpdateMailingList(ctx context.Context, list datatypes.MailingList) (*datatypes.MailingList, error) {
	var updated datatypes.MailingList
	if err := c.rest.put(ctx, "/mailing-lists/"+url.PathEscape(list.UID), list, &updated); err != nil {
		return nil, mapStatus(err, datatypes.ErrMailingListNotFound)
	}
	return &updated, nil
}

func (c *ProjectClient) DeleteMailingList(ctx context.Context, uid string) error {
	if err := c.rest.delete(ctx, "/mailing-lists/"+url.PathEscape(uid)); err != nil {
		return mapStatus(err, datatypes.ErrMailingListNotFound)
	}
	return nil
}

func (c *ProjectClient) ListVotes(ctx context.Context, projectUID string) ([]datatypes.Vote, error) {
	query := url.Values{"project": []string{projectUID}}
	var votes []datatypes.Vote
	if err := c.rest.get(ctx, "/votes", query, &votes); err != nil {
		return listFallback[datatypes.Vote](c.rest.log, "votes", err), nil
	}
	return votes, nil
}

func (c *ProjectClient) GetVote(ctx context.Context, uid string) (*datatypes.Vote, error) {
	var vote datatypes.Vote
	if err := c.rest.get(ctx, "/votes/"+url.PathEscape(uid), nil, &vote); err != nil {
		return nil, mapStatus(err, datatypes.ErrVoteNotFound)
	}
	return &vote, nil
}

func (c *ProjectClient) CreateVote(ctx context.Context, vote datatypes.Vote) (*datatypes.Vote, error) {
	var created datatypes.Vote
	if err := c.rest.post(ctx, "/votes", vote, &created); err != nil {
		return nil, mapStatus(err, nil)
	}
	return &created, nil
}

func (c *ProjectClient) UpdateVote(ctx context.Context, vote datatypes.Vote) (*datatypes.Vote, error) {
	var updated datatypes.Vote
	if err := c.rest.put(ctx, "/votes/"+url.PathEscape(vote.UID), vote, &updated); err != nil {
		return nil, mapStatus(err, datatypes.ErrVoteNotFound)
	}
	return &updated, nil
}

func (c *ProjectClient) DeleteVote(ctx context.Context, uid string) error {
	if err := c.rest.delete(ctx, "/votes/"+url.PathEscape(uid)); err != nil {
		return mapStatus(err, datatypes.ErrVoteNotFound)
	}
	return nil
}

func (c *ProjectClient) ListSurveys(ctx context.Context, projectUID string) ([]datatypes.Survey, error) {
	query := url.Values{"project": []string{projectUID}}
	var surveys []datatypes.Survey
	if err := c.rest.get(ctx, "/surveys", query, &surveys); err != nil {
		return listFallback[datatypes.Survey](c.rest.log, "surveys", err), nil
	}
	return surveys, nil
}
