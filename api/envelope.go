package api

import (
	"net/http"
)

// Envelope is a buffered HTTP response.
//
// Body is read in full by the transport, so factories may parse it more than
// once (primary parse plus error extraction).
type Envelope struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	IsError    bool
	Err        error
}

// NewEnvelope wraps a completed HTTP exchange. IsError is set for 4xx and 5xx
// statuses.
func NewEnvelope(status int, header http.Header, body []byte) *Envelope {
	if header == nil {
		header = http.Header{}
	}
	return &Envelope{
		StatusCode: status,
		Header:     header.Clone(),
		Body:       append([]byte(nil), body...),
		IsError:    status >= 400 && status < 600,
	}
}

// TransportFailure builds the envelope recorded when no HTTP response was
// received at all.
func TransportFailure(err error) *Envelope {
	return &Envelope{
		Header:  http.Header{},
		IsError: true,
		Err:     err,
	}
}

// IsSuccessful reports a 1xx or 2xx status.
func (e *Envelope) IsSuccessful() bool {
	if e == nil || e.IsError {
		return false
	}
	first := e.StatusCode / 100
	return first == 1 || first == 2
}
