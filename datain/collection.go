package datain

import (
	"iter"
	"net/http"

	"github.com/five82/lamplight/api"
)

// ResponseCollection holds the outcomes of one submission together with the
// HTTP response they came from.
type ResponseCollection struct {
	entries []SavedRecordResponse
	env     *api.Envelope
	success bool
}

// NewResponseCollection builds a collection over env. An empty collection
// counts as successful.
func NewResponseCollection(env *api.Envelope, entries ...SavedRecordResponse) *ResponseCollection {
	c := &ResponseCollection{env: env, success: true}
	for _, e := range entries {
		c.add(e)
	}
	return c
}

func (c *ResponseCollection) add(e SavedRecordResponse) {
	c.entries = append(c.entries, e)
	c.success = c.success && e.Success()
}

// Len returns the number of outcomes.
func (c *ResponseCollection) Len() int { return len(c.entries) }

// IsMultiple reports whether more than one outcome was returned.
func (c *ResponseCollection) IsMultiple() bool { return len(c.entries) > 1 }

// Success reports whether every outcome succeeded.
func (c *ResponseCollection) Success() bool { return c.success }

// ErrorCode returns the first non-zero error code.
func (c *ResponseCollection) ErrorCode() int {
	for _, e := range c.entries {
		if e.ErrorCode() > 0 {
			return e.ErrorCode()
		}
	}
	return 0
}

// ErrorMessage returns the first non-empty error message.
func (c *ResponseCollection) ErrorMessage() string {
	for _, e := range c.entries {
		if e.ErrorMessage() != "" {
			return e.ErrorMessage()
		}
	}
	return ""
}

// All yields index/outcome pairs in server order.
func (c *ResponseCollection) All() iter.Seq2[int, SavedRecordResponse] {
	return func(yield func(int, SavedRecordResponse) bool) {
		for i, e := range c.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Entries returns a copy of the outcomes.
func (c *ResponseCollection) Entries() []SavedRecordResponse {
	return append([]SavedRecordResponse(nil), c.entries...)
}

// First returns the first outcome.
func (c *ResponseCollection) First() (SavedRecordResponse, bool) {
	if len(c.entries) == 0 {
		return SavedRecordResponse{}, false
	}
	return c.entries[0], true
}

// Envelope returns the underlying response.
func (c *ResponseCollection) Envelope() *api.Envelope { return c.env }

// StatusCode returns the HTTP status of the underlying response.
func (c *ResponseCollection) StatusCode() int {
	if c.env == nil {
		return 0
	}
	return c.env.StatusCode
}

// Header returns the headers of the underlying response.
func (c *ResponseCollection) Header() http.Header {
	if c.env == nil {
		return http.Header{}
	}
	return c.env.Header
}

// Body returns the raw body of the underlying response.
func (c *ResponseCollection) Body() []byte {
	if c.env == nil {
		return nil
	}
	return c.env.Body
}

// IsError reports a failed submission, regardless of HTTP status.
func (c *ResponseCollection) IsError() bool { return !c.success }

// IsSuccessful reports a fully successful submission.
func (c *ResponseCollection) IsSuccessful() bool { return c.success }
