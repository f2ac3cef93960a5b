package recordset

import (
	"github.com/tidwall/gjson"

	"github.com/five82/lamplight/api"
	"github.com/five82/lamplight/record"
)

// Factory builds RecordSets from fetch responses.
type Factory struct {
	registry *record.Registry
}

// NewFactory returns a factory that builds records from reg. A nil registry
// means record.DefaultRegistry.
func NewFactory(reg *record.Registry) *Factory {
	if reg == nil {
		reg = record.DefaultRegistry()
	}
	return &Factory{registry: reg}
}

// Build normalises env into a RecordSet. override, when non-empty, replaces
// the record type name derived from rc.
func (f *Factory) Build(rc api.RequestContext, env *api.Envelope, override string) (*RecordSet, error) {
	if env == nil {
		return nil, api.ErrNoRequestMade
	}
	rs := newRecordSet(env.StatusCode)

	if env.IsError || !env.IsSuccessful() {
		rs.fail(errorDetails(env.Body))
		return rs, nil
	}
	if !gjson.ValidBytes(env.Body) {
		rs.fail(api.CodeUnparseableBody, api.MsgUnparseableBody)
		return rs, nil
	}

	doc := gjson.ParseBytes(env.Body)
	if !doc.IsObject() {
		return rs, nil
	}
	data := doc.Get("data")
	if !data.Exists() {
		return rs, nil
	}

	name := override
	if name == "" {
		name = record.Resolve(rc.Action, rc.Method)
	}

	var items []gjson.Result
	switch {
	case data.IsObject():
		items = []gjson.Result{data}
	case data.IsArray():
		items = data.Array()
	}
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		r := f.registry.New(name, record.ParseFields(item))
		r.Init(rc)
		rs.add(r)
	}
	return rs, nil
}

// errorDetails extracts the server's error code and message from body,
// falling back to the fixed diagnostics.
func errorDetails(body []byte) (int, string) {
	if !gjson.ValidBytes(body) {
		return api.CodeUnparseableBody, api.MsgUnparseableBody
	}
	doc := gjson.ParseBytes(body)
	if code := doc.Get("error"); doc.IsObject() && code.Exists() {
		return int(code.Int()), doc.Get("msg").String()
	}
	return api.CodeUnexpectedShape, api.MsgUnexpectedShape
}
