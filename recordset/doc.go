// Package recordset turns the response to a Lamplight fetch request into an
// ordered collection of records.
//
// # Overview
//
// The Factory accepts the request context and the buffered response envelope
// and never fails on payload problems. The only error Build returns is
// api.ErrNoRequestMade, for a nil envelope.
//
//	Build(rc, env, override)
//	  │
//	  ├─ env.IsError or status not 2xx ──> error RecordSet (errorDetails)
//	  ├─ body not JSON ──────────────────> error RecordSet, 1100
//	  ├─ no "data" property ─────────────> empty RecordSet, no error
//	  └─ "data" object or array
//	        │
//	        ├─> record.Resolve(action, method) unless override is set
//	        ├─> Registry.New(name, fields) per object element
//	        └─> record.Init(rc)
//
// # Error Details
//
// When the response is an error, the code and message come from the body:
//
//	{"error": 1234, "msg": "bad luck"}   code 1234, message "bad luck"
//	{"error": 1234}                      code 1234, message ""
//	{"oops": true}                       api.CodeUnexpectedShape (1101)
//	not json, or empty                   api.CodeUnparseableBody (1100)
//
// A transport failure produces an envelope with IsError set and no body, so
// it reports 1100 with status 0.
//
// # Nothing Found
//
// A 2xx response without a data property is the "nothing found" answer and
// yields an empty RecordSet with HasErrors false. This holds even when the
// body carries an "error" key: the API signals real failures through the
// status code, and a 2xx status is trusted.
//
// # Shapes and Ordering
//
// A single data object is treated as a one-element list, so fetching one
// record and fetching many take the same path. Array elements that are not
// objects are skipped.
//
// Records keep server order. Lookup by id returns the first record with that
// id; records sharing an id (including records with no id, which all have id
// 0) are all retained. All yields (id, record) pairs in that order.
//
// # Rendering
//
// Render concatenates each record's rendering with no separator. An empty
// template argument falls back to the template stored with SetTemplate, and
// an empty stored template renders every field. Output is HTML-escaped by the
// records themselves.
package recordset
