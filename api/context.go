package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Request methods understood by the Lamplight API.
const (
	MethodOne          = "one"
	MethodSome         = "some"
	MethodAll          = "all"
	MethodAttend       = "attend"
	MethodAdd          = "add"
	MethodUpdate       = "update"
	MethodRelationship = "relationship"
	MethodGroup        = "group"
)

// Resource actions understood by the Lamplight API.
const (
	ActionWork         = "work"
	ActionWorkarea     = "workarea"
	ActionPeople       = "people"
	ActionOrgs         = "orgs"
	ActionFamily       = "family"
	ActionReferral     = "referral"
	ActionRelationship = "relationship"
)

// RequestContext describes the last request sent to the API.
type RequestContext struct {
	Action      string
	Method      string
	SubmittedID int
	Parameters  url.Values
	RequestID   string
}

// NewRequestContext builds a context, deriving SubmittedID from the "id"
// parameter when present.
func NewRequestContext(action, method string, params url.Values) RequestContext {
	rc := RequestContext{
		Action:     strings.TrimSpace(action),
		Method:     strings.TrimSpace(method),
		Parameters: cloneValues(params),
	}
	if id, err := strconv.Atoi(strings.TrimSpace(rc.Parameter("id"))); err == nil && id > 0 {
		rc.SubmittedID = id
	}
	return rc
}

// Parameter returns the submitted value for name, or "" when absent.
func (rc RequestContext) Parameter(name string) string {
	if rc.Parameters == nil {
		return ""
	}
	return rc.Parameters.Get(name)
}

// Pair returns "action/method", the key used to classify requests.
func (rc RequestContext) Pair() string {
	return rc.Action + "/" + rc.Method
}

// IsZero reports whether the context describes no request at all.
func (rc RequestContext) IsZero() bool {
	return rc.Action == "" && rc.Method == ""
}

func cloneValues(v url.Values) url.Values {
	if len(v) == 0 {
		return url.Values{}
	}
	dup := make(url.Values, len(v))
	for k, vals := range v {
		dup[k] = append([]string(nil), vals...)
	}
	return dup
}
