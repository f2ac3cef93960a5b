package recordset

import (
	"iter"
	"strings"

	"github.com/five82/lamplight/record"
)

// RecordSet is the result of a fetch request. When HasErrors is true it holds
// no records.
type RecordSet struct {
	records      []record.Record
	byID         map[int]int
	hasErrors    bool
	errorCode    int
	errorMessage string
	httpStatus   int
	template     string
}

func newRecordSet(status int) *RecordSet {
	return &RecordSet{byID: make(map[int]int), httpStatus: status}
}

func (rs *RecordSet) add(r record.Record) {
	id := r.ID()
	if _, ok := rs.byID[id]; !ok {
		rs.byID[id] = len(rs.records)
	}
	rs.records = append(rs.records, r)
}

func (rs *RecordSet) fail(code int, msg string) {
	rs.records = nil
	rs.byID = make(map[int]int)
	rs.hasErrors = true
	rs.errorCode = code
	rs.errorMessage = msg
}

// Len returns the number of records.
func (rs *RecordSet) Len() int { return len(rs.records) }

// HasErrors reports whether the request failed.
func (rs *RecordSet) HasErrors() bool { return rs.hasErrors }

// ErrorCode returns the server or diagnostic error code, 0 if none.
func (rs *RecordSet) ErrorCode() int { return rs.errorCode }

// ErrorMessage returns the server or diagnostic error message.
func (rs *RecordSet) ErrorMessage() string { return rs.errorMessage }

// HTTPStatus returns the response status code, 0 if no response arrived.
func (rs *RecordSet) HTTPStatus() int { return rs.httpStatus }

// All yields id/record pairs in server order.
func (rs *RecordSet) All() iter.Seq2[int, record.Record] {
	return func(yield func(int, record.Record) bool) {
		for _, r := range rs.records {
			if !yield(r.ID(), r) {
				return
			}
		}
	}
}

// Records returns the records in server order.
func (rs *RecordSet) Records() []record.Record {
	return append([]record.Record(nil), rs.records...)
}

// Lookup returns the first record with the given id.
func (rs *RecordSet) Lookup(id int) (record.Record, bool) {
	i, ok := rs.byID[id]
	if !ok {
		return nil, false
	}
	return rs.records[i], true
}

// First returns the first record, if any.
func (rs *RecordSet) First() (record.Record, bool) {
	if len(rs.records) == 0 {
		return nil, false
	}
	return rs.records[0], true
}

// SetTemplate sets the template Render uses when called with "".
func (rs *RecordSet) SetTemplate(template string) { rs.template = template }

// Template returns the stored render template.
func (rs *RecordSet) Template() string { return rs.template }

// Render renders every record with template, or the stored template when
// template is empty, and concatenates the results without a separator.
func (rs *RecordSet) Render(template string) string {
	if template == "" {
		template = rs.template
	}
	var b strings.Builder
	for _, r := range rs.records {
		b.WriteString(r.Render(template))
	}
	return b.String()
}

// Plural returns "s" unless the set holds exactly one record.
func (rs *RecordSet) Plural() string {
	if len(rs.records) == 1 {
		return ""
	}
	return "s"
}
