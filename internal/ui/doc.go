// Package ui is a read-only terminal browser for one Lamplight fetch.
//
// # Layout
//
//	┌ lamplight people/all ────────────────────── 2 records ┐
//	│     7  Smith, Pat          │ PeopleSummary            │
//	│     9  Jones, Sam          │ id          7            │
//	│                            │ first_name  Pat          │
//	│                            │ surname     Smith        │
//	└ 2 shown · updated 10:04:05 · h for help ──────────────┘
//
// The left pane lists the fetched records, one row per record rendered with
// the user's template for its type (see prefs.Prefs.Template). The right
// pane shows every field of the selected record in a scrollable viewport.
//
// # Status
//
// The header shows the record count, or "connecting" before the first fetch
// lands and "offline" after repeated transport failures. The footer shows, in
// order of precedence:
//
//   - the API error code and message when the last response reported one
//   - the transport error when the fetch itself failed
//   - an error saving preferences
//   - the record count and the time of the last update
//
// # Data Flow
//
// The model never talks to the API:
//
//	Poller ──> state.Store ──(tickMsg)──> Model.snapshot ──> View
//	   ↑                                        │
//	   └────────── Options.Refresh ─────── r key
//
// It reads snapshots from the store on a fixed tick; r asks the poller for
// an immediate fetch.
//
// # Keys
//
//	j/k, arrows   move the selection, or scroll the detail pane when focused
//	g/G           first or last record
//	ctrl+u/d      page up or down
//	tab           toggle focus between list and detail
//	T             cycle theme and save it to the prefs file
//	r             fetch now
//	h, ?          help (any key closes it)
//	q, ctrl+c     quit
package ui
