package api

import "errors"

var (
	// ErrNoRequestMade is returned when a result is requested before any
	// request has completed.
	ErrNoRequestMade = errors.New("no request has been made")

	// ErrNotDatain is returned when the datain factory is given a response to
	// a fetch-style request.
	ErrNotDatain = errors.New("last request was not a datain request")
)

// Fixed diagnostic codes reported when a body cannot be interpreted.
const (
	CodeUnparseableBody = 1100
	CodeUnexpectedShape = 1101
	CodeEmptySubmission = 1072
)

// Messages paired with the diagnostic codes.
const (
	MsgUnparseableBody = "Could not parse response body as json"
	MsgUnexpectedShape = "The response from the server was an error, we parsed it as json OK, " +
		"but it doesn't have the expected error code and message."
	MsgEmptySubmission = "The response from the server had neither data nor an error"
)
