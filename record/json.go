package record

import (
	"bytes"
	"encoding/json"
	"time"
)

// MarshalJSON encodes the fields as an object in insertion order. Dates are
// written in DateLayout and HTML characters are left unescaped.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for name, value := range f.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		if err := encodeJSON(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v any) error {
	switch vv := v.(type) {
	case *Fields:
		b, err := vv.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range vv {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case time.Time:
		v = vv.Format(DateLayout)
	}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}
