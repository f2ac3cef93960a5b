package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/lamplight/api"
	"github.com/five82/lamplight/recordset"
)

// Profile roles accepted by the API.
const (
	RoleUser    = "user"
	RoleContact = "contact"
	RoleStaff   = "staff"
	RoleFunder  = "funder"
	RoleOrg     = "org"
)

// ErrInvalidRole is returned for a role the requested resource does not have.
var ErrInvalidRole = errors.New("invalid role")

var roles = map[string][]string{
	api.ActionPeople: {RoleUser, RoleContact, RoleStaff, RoleFunder},
	api.ActionOrgs:   {RoleUser, RoleContact, RoleOrg, RoleFunder},
}

// FetchQuery configures a fetch request.
type FetchQuery struct {
	Action string
	// Method is one, some or all.
	Method string
	ID     int
	Role   string
	// Near restricts results to those near a postcode or place. It implies
	// full data.
	Near       string
	NearRadius int
	// Return is "short" or "full".
	Return string
	// Type overrides the record type the results are built as.
	Type   string
	Params url.Values
}

// Values encodes the query parameters.
func (q FetchQuery) Values() (url.Values, error) {
	values := url.Values{}
	for k, v := range q.Params {
		values[k] = append([]string(nil), v...)
	}
	if q.ID > 0 {
		values.Set("id", strconv.Itoa(q.ID))
	}
	if role := strings.TrimSpace(q.Role); role != "" {
		allowed, ok := roles[q.Action]
		if !ok || !slices.Contains(allowed, role) {
			return nil, fmt.Errorf("%w %q for %s", ErrInvalidRole, role, q.Action)
		}
		values.Set("role", role)
	}
	switch ret := strings.TrimSpace(q.Return); ret {
	case "":
	case "short", "full":
		values.Set("return", ret)
	default:
		return nil, fmt.Errorf("return must be short or full, got %q", ret)
	}
	if near := strings.TrimSpace(q.Near); near != "" {
		values.Set("near", near)
		values.Set("nearRadius", strconv.Itoa(q.NearRadius))
		values.Set("return", "full")
	}
	return values, nil
}

// Fetch requests records and builds them into a RecordSet. Server-side
// failures are reported through the RecordSet; only invalid queries and
// network failures return an error.
func (c *Client) Fetch(ctx context.Context, query FetchQuery) (*recordset.RecordSet, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if !api.IsFetch(query.Method) {
		return nil, fmt.Errorf("fetch method must be one, some or all, got %q", query.Method)
	}
	values, err := query.Values()
	if err != nil {
		return nil, err
	}
	rc, env, err := c.send(ctx, Request{Action: query.Action, Method: query.Method, Params: values})
	if err != nil {
		return nil, err
	}
	rs, err := c.records.Build(rc, env, query.Type)
	if err != nil {
		return nil, fmt.Errorf("build record set: %w", err)
	}
	if rs.HasErrors() {
		c.logger.Debug("lamplight fetch returned error",
			zapCode(rs.ErrorCode()), zapMessage(rs.ErrorMessage()))
	}
	return rs, nil
}
