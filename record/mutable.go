package record

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotEditable is returned when writing to a frozen record.
	ErrNotEditable = errors.New("record is not editable")
	// ErrMissingAttendee is returned when a submission requires an attendee.
	ErrMissingAttendee = errors.New("attendee has not been set but is not optional")
	// ErrMissingID is returned when a submission requires an id.
	ErrMissingID = errors.New("id has not been set but is not optional")
)

// Mutable is a record that can be submitted to the API.
type Mutable interface {
	Record
	Action() string
	Method() string
	Editable() bool
	// Set writes a field, routing recognised names to the named setter.
	Set(field string, value any) error
	// BeforeSave runs immediately before submission.
	BeforeSave()
	// Submission returns the form values to send.
	Submission() (url.Values, error)
}

type mutable struct {
	*Base
	action   string
	method   string
	editable bool
}

func newMutable(kind, action, method string, fields *Fields) *mutable {
	return &mutable{
		Base:     NewBase(kind, fields),
		action:   action,
		method:   method,
		editable: true,
	}
}

func (m *mutable) Action() string { return m.action }
func (m *mutable) Method() string { return m.method }
func (m *mutable) Editable() bool { return m.editable }
func (m *mutable) BeforeSave()    {}

// Freeze makes the record read-only.
func (m *mutable) Freeze() { m.editable = false }

// SetAttendee sets the attendee identifier: a profile id or a name/email the
// server resolves.
func (m *mutable) SetAttendee(attendee any) {
	if m.editable {
		m.fields.Set("attendee", attendee)
	}
}

// SetWorkarea accepts an int id, a numeric string or a comma-separated list of
// ids. Other values are ignored.
func (m *mutable) SetWorkarea(workarea any) {
	if !m.editable {
		return
	}
	switch v := workarea.(type) {
	case int:
		m.fields.Set("workarea", v)
	case int64:
		m.fields.Set("workarea", v)
	case string:
		if strings.Contains(v, ",") {
			m.fields.Set("workarea", v)
		} else if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			m.fields.Set("workarea", n)
		}
	}
}

// set handles the setters every mutable record shares.
func (m *mutable) set(field string, value any) error {
	if !m.editable {
		return ErrNotEditable
	}
	switch strings.ToLower(field) {
	case "attendee":
		m.SetAttendee(value)
	case "workarea":
		m.SetWorkarea(value)
	default:
		m.fields.Set(field, value)
	}
	return nil
}

func (m *mutable) Set(field string, value any) error {
	return m.set(field, value)
}

// appendForm adds value under name, expanding lists and nested objects into
// bracketed keys.
func appendForm(form url.Values, name string, value any) {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			appendForm(form, name+"[]", item)
		}
	case *Fields:
		for k, item := range v.All() {
			appendForm(form, name+"["+k+"]", item)
		}
	default:
		form.Add(name, formatValue(v))
	}
}

func isBlank(value any) bool {
	s := formatValue(value)
	return s == "" || s == "0"
}

func toDate(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return now().Format(DateLayout), nil
	case time.Time:
		if v.IsZero() {
			return now().Format(DateLayout), nil
		}
		return v.Format(DateLayout), nil
	case *time.Time:
		if v == nil {
			return now().Format(DateLayout), nil
		}
		return v.Format(DateLayout), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return now().Format(DateLayout), nil
		}
		t := parseTime(v)
		if t.IsZero() {
			return "", fmt.Errorf("parse date %q: unrecognised format", v)
		}
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("parse date: unsupported type %T", value)
}

func toID(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("parse id %q: %w", v, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("parse id: unsupported type %T", value)
}
