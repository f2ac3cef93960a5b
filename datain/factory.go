package datain

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/five82/lamplight/api"
)

// Echo selects how a bare numeric data value is read.
type Echo int

const (
	// EchoSubmittedID uses the returned number as the id only when the request
	// carried no id; otherwise the submitted id is reported.
	EchoSubmittedID Echo = iota
	// EchoReturnedID reports any positive returned number as the id.
	EchoReturnedID
)

// Policy tunes how ambiguous submission responses are read.
type Policy struct {
	Echo Echo
	// MessageAcknowledges treats a body carrying only "msg" as success for the
	// submitted id. Some endpoints (relationships) answer this way.
	MessageAcknowledges bool
}

// DefaultPolicy returns the policy matching the current API.
func DefaultPolicy() Policy {
	return Policy{Echo: EchoSubmittedID}
}

// Factory builds ResponseCollections from submission responses.
type Factory struct {
	policy Policy
}

// NewFactory returns a factory using policy.
func NewFactory(policy Policy) *Factory {
	return &Factory{policy: policy}
}

// Policy returns the factory's policy.
func (f *Factory) Policy() Policy { return f.policy }

// Build interprets env as the response to the submission described by rc.
func (f *Factory) Build(rc api.RequestContext, env *api.Envelope) (*ResponseCollection, error) {
	if env == nil {
		return nil, api.ErrNoRequestMade
	}
	if !api.IsSubmission(rc.Action, rc.Method) {
		return nil, api.ErrNotDatain
	}
	c := NewResponseCollection(env)
	for _, e := range f.outcomes(rc, env.Body) {
		c.add(e)
	}
	return c, nil
}

func (f *Factory) outcomes(rc api.RequestContext, body []byte) []SavedRecordResponse {
	empty := []SavedRecordResponse{
		NewSavedRecordResponse(rc.SubmittedID, false, api.CodeEmptySubmission, api.MsgEmptySubmission),
	}
	if !gjson.ValidBytes(body) {
		return empty
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return empty
	}

	data := doc.Get("data")
	switch {
	case data.Exists() && data.IsArray():
		items := data.Array()
		if len(items) == 0 {
			return empty
		}
		out := make([]SavedRecordResponse, 0, len(items))
		for _, item := range items {
			out = append(out, element(item))
		}
		return out
	case data.Exists() && data.IsObject():
		if id := data.Get("id"); id.Exists() {
			return []SavedRecordResponse{NewSavedRecordResponse(intOf(id), true, 0, "")}
		}
		if rc.SubmittedID <= 0 {
			return empty
		}
		return []SavedRecordResponse{NewSavedRecordResponse(rc.SubmittedID, true, 0, "")}
	case data.Exists():
		// An id of 0 names no record, so nothing is known to have been saved.
		id := f.echoID(rc, intOf(data))
		if id <= 0 {
			return empty
		}
		return []SavedRecordResponse{NewSavedRecordResponse(id, true, 0, "")}
	}

	if code := doc.Get("error"); code.Exists() {
		return []SavedRecordResponse{NewSavedRecordResponse(0, false, intOf(code), doc.Get("msg").String())}
	}
	if f.policy.MessageAcknowledges && doc.Get("msg").Exists() {
		return []SavedRecordResponse{NewSavedRecordResponse(rc.SubmittedID, true, 0, "")}
	}
	return empty
}

func (f *Factory) echoID(rc api.RequestContext, returned int) int {
	if returned > 0 && (rc.SubmittedID == 0 || f.policy.Echo == EchoReturnedID) {
		return returned
	}
	return rc.SubmittedID
}

func element(item gjson.Result) SavedRecordResponse {
	code := 0
	if e := item.Get("error"); e.Exists() && intOf(e) > 0 {
		code = intOf(e)
	}
	return NewSavedRecordResponse(intOf(item.Get("id")), item.Get("attend").Bool(), code, item.Get("msg").String())
}

// intOf reads numbers and numeric strings; anything else is 0.
func intOf(v gjson.Result) int {
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
