package record

import (
	"iter"
	"strings"

	"github.com/five82/lamplight/api"
)

// Record is one entity returned by a fetch request.
type Record interface {
	// Type is the registry name the record was built under.
	Type() string
	// Get returns the field value, trimming strings. Missing fields are "".
	Get(field string) any
	// ID returns the int-coerced id field.
	ID() int
	Fields() *Fields
	Len() int
	All() iter.Seq2[string, any]
	Render(template string) string
	RenderField(field string) string
	// Init runs once after construction with the request that produced the
	// record.
	Init(rc api.RequestContext)
}

// Base is a read-only record. Summary types are plain Base values.
type Base struct {
	kind   string
	fields *Fields
}

var _ Record = (*Base)(nil)

// NewBase wraps fields as a record of the given type name.
func NewBase(kind string, fields *Fields) *Base {
	if fields == nil {
		fields = NewFields()
	}
	return &Base{kind: kind, fields: fields}
}

// Type implements Record.
func (b *Base) Type() string { return b.kind }

// Fields implements Record.
func (b *Base) Fields() *Fields { return b.fields }

// Len implements Record.
func (b *Base) Len() int { return b.fields.Len() }

// All implements Record.
func (b *Base) All() iter.Seq2[string, any] { return b.fields.All() }

// Init implements Record. Base records need no request context.
func (b *Base) Init(api.RequestContext) {}

// Get implements Record.
func (b *Base) Get(field string) any {
	v, ok := b.fields.Lookup(field)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// GetString returns the field formatted as plain text.
func (b *Base) GetString(field string) string {
	return formatValue(b.Get(field))
}

// ID implements Record.
func (b *Base) ID() int {
	v, ok := b.fields.Lookup("id")
	if !ok {
		return 0
	}
	return toInt(v)
}
