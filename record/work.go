package record

import "net/url"

// Work is a work record. Submitting it adds an attendee to the work record
// with the given id.
type Work struct {
	*mutable
}

var _ Mutable = (*Work)(nil)

// NewWork wraps fields as a Work record.
func NewWork(fields *Fields) *Work {
	return &Work{mutable: newMutable("Work", "work", "attend", fields)}
}

// SetID sets the work record to attend.
func (w *Work) SetID(id int) {
	if w.editable {
		w.fields.Set("id", id)
	}
}

// Set implements Mutable.
func (w *Work) Set(field string, value any) error {
	if !w.editable {
		return ErrNotEditable
	}
	if field == "id" {
		id, err := toID(value)
		if err != nil {
			return err
		}
		w.SetID(id)
		return nil
	}
	return w.set(field, value)
}

// Submission implements Mutable.
func (w *Work) Submission() (url.Values, error) {
	attendee, id := w.Get("attendee"), w.Get("id")
	if isBlank(attendee) {
		return nil, ErrMissingAttendee
	}
	if isBlank(id) {
		return nil, ErrMissingID
	}
	form := url.Values{}
	appendForm(form, "attendee", attendee)
	appendForm(form, "id", id)
	return form, nil
}
