// Package record defines the entities returned by Lamplight fetch requests and
// the mutable variants that can be submitted back through the datain module.
//
// # Fields
//
// Every record is an ordered field bag (Fields) decoded from one JSON object.
// Field order follows the response document, which matters twice: a record
// rendered without a template is the comma-separated list of its values in
// that order, and Fields.MarshalJSON writes keys in that order.
//
// Decoded values are normalised to a small set of types:
//
//	JSON string   string
//	JSON integer  int64
//	JSON number   float64
//	true/false    bool
//	null          nil
//	array         []any
//	object        *Fields
//
// # Type Resolution
//
// Record types are looked up by name in a Registry. The name for a fetch is
// derived from the request by Resolve:
//
//	work/one       Work
//	work/some      WorkSummary
//	workarea/all   WorkareaSummary
//	people/all     PeopleSummary
//
// Names missing from the registry build a read-only Base carrying the name,
// so a new API action never fails a fetch. DefaultRegistry holds every type
// the API is known to return; callers can Register their own constructors.
//
// # Rendering
//
// Render fills {field} placeholders from the record:
//
//	Render("")                     every value, ", " separated
//	Render("{surname}, {name}")    named fields; unknown names render ""
//
// Arrays and nested objects are flattened with ", ". Every value is
// HTML-escaped exactly once (& < > " '), which suits the HTML pages the API
// is usually rendered into. Terminal callers unescape the result.
//
// # Mutable Records
//
// Mutable records (Work, Referral, People, Orgs, Family, Relationship,
// GroupMembership) expose named setters plus a generic Set that dispatches to
// them, falling back to a plain field write for unrecognised names.
// Submission returns the form posted by client.Save; each type knows its own
// action and method, and profiles pick "add" or "update" from whether an id is
// set.
//
// Freeze makes a record read-only. Set and SetDate return ErrNotEditable on a
// frozen record; setters without an error result leave it unchanged.
//
// Dates are written in DateLayout. A blank date or the zero time means now.
package record
