// Package api holds the small set of types shared between the Lamplight
// transport and the response factories.
//
// # Overview
//
// A round trip against the Lamplight API produces two values:
//
//   - RequestContext: what was asked for (action, method, submitted id and
//     parameters). It is created fresh before each transport call and is
//     read-only afterwards.
//   - Envelope: what came back (status code, headers, buffered body and an
//     error flag for transport failures and 4xx/5xx statuses).
//
// The recordset and datain packages turn these two values into typed results.
// Neither package talks to the network; they only read the snapshots defined
// here.
//
// # Error Taxonomy
//
// Programmer errors are reported as Go errors and can be matched with
// errors.Is:
//
//   - ErrNoRequestMade: a factory was asked to build a result before any
//     request completed.
//   - ErrNotDatain: the datain factory was asked to read a fetch-style
//     response.
//
// Payload problems are never errors. They become structured error state
// carrying one of the fixed diagnostic codes:
//
//   - CodeUnparseableBody (1100): the body is not valid JSON.
//   - CodeUnexpectedShape (1101): the body is JSON but lacks error/msg.
//   - CodeEmptySubmission (1072): a submission body has neither data nor error.
//
// These codes are part of the wire contract and must not change.
package api
