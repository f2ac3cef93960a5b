package record

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var referralBuiltins = map[string]bool{
	"date":     true,
	"workarea": true,
	"attendee": true,
	"reason":   true,
}

// Referral is a new referral for an attendee into a workarea.
type Referral struct {
	*mutable
}

var _ Mutable = (*Referral)(nil)

// NewReferral wraps fields as a Referral.
func NewReferral(fields *Fields) *Referral {
	return &Referral{mutable: newMutable("Referral", "referral", "add", fields)}
}

// SetDate parses date and stores it in the API layout. An empty string means
// now.
func (r *Referral) SetDate(date string) error {
	return r.setDate(date)
}

// SetDateTime stores t in the API layout. A zero time means now.
func (r *Referral) SetDateTime(t time.Time) {
	if !r.editable {
		return
	}
	if t.IsZero() {
		t = now()
	}
	r.fields.Set("date", t.Format(DateLayout))
}

func (r *Referral) setDate(value any) error {
	if !r.editable {
		return ErrNotEditable
	}
	date, err := toDate(value)
	if err != nil {
		return fmt.Errorf("set referral date: %w", err)
	}
	r.fields.Set("date", date)
	return nil
}

// SetReason sets the free-text referral reason.
func (r *Referral) SetReason(reason string) {
	if r.editable {
		r.fields.Set("reason", reason)
	}
}

// Set implements Mutable.
func (r *Referral) Set(field string, value any) error {
	if !r.editable {
		return ErrNotEditable
	}
	switch strings.ToLower(field) {
	case "date":
		return r.setDate(value)
	case "reason":
		r.SetReason(formatValue(value))
		return nil
	}
	return r.set(field, value)
}

// Submission implements Mutable. Custom fields follow the built-in ones and
// may override them.
func (r *Referral) Submission() (url.Values, error) {
	attendee := r.Get("attendee")
	if isBlank(attendee) {
		return nil, ErrMissingAttendee
	}
	form := url.Values{}
	appendForm(form, "date_from", r.Get("date"))
	appendForm(form, "workareaid", r.Get("workarea"))
	appendForm(form, "attendee", attendee)
	appendForm(form, "referral_reason", r.Get("reason"))
	for name, value := range r.fields.All() {
		if referralBuiltins[name] {
			continue
		}
		form.Del(name)
		appendForm(form, name, value)
	}
	return form, nil
}
