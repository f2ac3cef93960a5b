// Package client provides an HTTP client for the Lamplight API.
//
// # Overview
//
// The client builds Lamplight requests, sends them, buffers the response and
// hands it to the recordset or datain factory. It also keeps the last
// request/response pair so a caller can rebuild the result later with
// LastRecordSet or LastDatainResponse.
//
// # Architecture
//
//   - client.go: construction, options, the raw Do call and last-exchange state
//   - fetch.go: FetchQuery and Fetch (one, some or all records)
//   - save.go: Save for mutable records and the AttendWork shortcut
//
// # Client Usage
//
//	c, err := client.New(client.Credentials{Key: key, LampID: 12, Project: 1},
//		client.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	rs, err := c.Fetch(ctx, client.FetchQuery{Action: "workarea", Method: "all"})
//	if err != nil {
//		return err
//	}
//	if rs.HasErrors() {
//		log.Printf("lamplight error %d: %s", rs.ErrorCode(), rs.ErrorMessage())
//	}
//
//	out, err := c.AttendWork(ctx, 5985, "someone@example.com")
//	if err == nil && !out.Success() {
//		log.Printf("attend failed: %s", out.ErrorMessage())
//	}
//
// # Request Handling
//
// Every request goes to <base><action>/<method>/format/json. The key, lampid
// and project credentials are sent as query parameters. Fetch parameters are
// sent as the query string, submissions as a form-encoded POST body.
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a User-Agent header
//   - Carry an X-Request-ID, also recorded in the request context and logs
//   - Have a 30-second timeout unless another http.Client is supplied
//
// # Error Handling
//
// Errors returned from Fetch, Save and Do are limited to:
//
//   - Invalid use: ErrMissingCredentials, ErrIncompleteRequest, ErrInvalidRole,
//     record.ErrNotEditable, or a record that cannot be submitted yet
//   - Network errors: "execute request: dial tcp: connection refused"
//
// HTTP error statuses and error bodies are not Go errors. They arrive as a
// RecordSet with HasErrors set or as a ResponseCollection whose Success is
// false. After a network failure the last response is a transport-failure
// envelope, so LastRecordSet reports HasErrors with code 1100.
//
// # Thread Safety
//
// A Client may be shared between goroutines. The last exchange is guarded by
// a mutex and reflects whichever request finished last.
package client
