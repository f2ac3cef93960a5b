// Package datain interprets the responses to Lamplight data submissions
// (attending work, adding referrals, adding or updating profiles,
// relationships and group memberships).
//
// # Overview
//
// A submission is a POST whose action/method pair appears in
// api.IsSubmission. The server answers it with one or more outcomes, and this
// package turns that answer into a ResponseCollection of SavedRecordResponse
// values:
//
//	client.Save(ctx, rec)
//	      │
//	      ├─> api.RequestContext   action, method, submitted id
//	      ├─> api.Envelope         status, headers, buffered body
//	      ↓
//	Factory.Build(rc, env)
//	      │
//	      ├─> outcomes()           one SavedRecordResponse per outcome
//	      ↓
//	ResponseCollection             Success, ErrorCode, ErrorMessage
//
// # Response Shapes
//
// The server answers submissions in several shapes:
//
//	{"data": [{"id": 1, "attend": true}, ...]}   one outcome per element
//	{"data": {"id": 1, ...}}                      success for that id
//	{"data": {...}}                               success for the submitted id
//	{"data": 123}                                 success; 123 may be a new id
//	{"error": 1026, "msg": "..."}                 failure, id 0
//
// Array elements carry their own verdict: "attend" decides success, and a
// positive "error" with its "msg" describes the failure. Non-positive error
// codes on an element are ignored.
//
// # Empty Submissions
//
// Anything that does not name a saved record is a failure with
// api.CodeEmptySubmission and api.MsgEmptySubmission:
//
//   - an empty or malformed body, or a JSON value that is not an object
//   - an object with neither "data" nor "error"
//   - "data" that is an empty array
//   - "data" that resolves to no id (null, 0, false, a word) when the
//     request did not carry an id either
//
// The synthetic entry reports the submitted id, if any. A collection built by
// the Factory therefore always holds at least one entry; only a collection
// built directly with NewResponseCollection can be empty.
//
// # Policy
//
// Two cases are ambiguous in the API and are governed by Policy:
//
//	Echo = EchoSubmittedID (default)
//	  {"data": 41} for a request with id 40  →  id 40
//	  {"data": 41} for a request without id  →  id 41
//
//	Echo = EchoReturnedID
//	  {"data": 41} for a request with id 40  →  id 41
//	  {"data": 0}  for a request with id 40  →  id 40
//
//	MessageAcknowledges = true
//	  {"msg": "Relationship created"}        →  success for the submitted id
//
// Without MessageAcknowledges a message-only body is an empty submission.
//
// # Aggregation
//
// A ResponseCollection succeeds only when every entry succeeded. ErrorCode
// and ErrorMessage return the first non-zero code and the first non-empty
// message, which may come from different entries. Status, headers and body
// are read from the envelope the collection was built from; a collection
// with no envelope reports status 0 and an empty header.
package datain
