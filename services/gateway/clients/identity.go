// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package clients

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// IdentityClient fronts the identity/profile service.
type IdentityClient struct {
	rest *rest
}

var _ downstream.IdentityService = (*IdentityClient)(nil)

// NewIdentityClient builds a client for the identity service.
func NewIdentityClient(cfg Config) (*IdentityClient, error) {
	r, err := newREST(cfg)
	if err != nil {
		return nil, err
	}
	return &IdentityClient{rest: r}, nil
}

func (c *IdentityClient) SearchUsers(ctx context.Context, query string) ([]datatypes.User, error) {
	values := url.Values{"q": []string{query}}
	var users []datatypes.User
	if err := c.rest.get(ctx, "/users/search", values, &users); err != nil {
		return listFallback[datatypes.User](c.rest.log, "users", err), nil
	}
	return users, nil
}

func (c *IdentityClient) GetUser(ctx context.Context, username string) (*datatypes.User, error) {
	var user datatypes.User
	if err := c.rest.get(ctx, "/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, mapStatus(err, datatypes.ErrUserNotFound)
	}
	return &user, nil
}

func (c *IdentityClient) ListPermissions(ctx context.Context, projectUID string) ([]datatypes.Permission, error) {
	var permissions []datatypes.Permission
	path := "/projects/" + url.PathEscape(projectUID) + "/permissions"
	if err := c.rest.get(ctx, path, nil, &permissions); err != nil {
		return listFallback[datatypes.Permission](c.rest.log, "permissions", err), nil
	}
	return permissions, nil
}

func (c *IdentityClient) PutPermission(ctx context.Context, projectUID string, permission datatypes.Permission) error {
	path := "/projects/" + url.PathEscape(projectUID) + "/permissions/" + url.PathEscape(permission.Username)
	if err := c.rest.put(ctx, path, permission, nil); err != nil {
		return mapStatus(err, datatypes.ErrUserNotFound)
	}
	return nil
}

func (c *IdentityClient) DeletePermission(ctx context.Context, projectUID, username string) error {
	path := "/projects/" + url.PathEscape(projectUID) + "/permissions/" + url.PathEscape(username)
	if err := c.rest.delete(ctx, path); err != nil {
		return mapStatus(err, datatypes.ErrUserNotFound)
	}
	return nil
}

// OrganizationClient fronts the organization lookup service.
type OrganizationClient struct {
	rest *rest
}

var _ downstream.OrganizationService = (*OrganizationClient)(nil)

// NewOrganizationClient builds a client for the organization service.
func NewOrganizationClient(cfg Config) (*OrganizationClient, error) {
	r, err := newREST(cfg)
	if err != nil {
		return nil, err
	}
	return &OrganizationClient{rest: r}, nil
}

func (c *OrganizationClient) SearchOrganizations(ctx context.Context, name string) ([]datatypes.Organization, error) {
	values := url.Values{"name": []string{name}}
	var orgs []datatypes.Organization
	if err := c.rest.get(ctx, "/organizations/search", values, &orgs); err != nil {
		return listFallback[datatypes.Organization](c.rest.log, "organizations", err), nil
	}
	return orgs, nil
}
