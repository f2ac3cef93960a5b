package record

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/five82/lamplight/api"
)

// Constructor builds a record from decoded fields.
type Constructor func(fields *Fields) Record

// Registry maps record type names to constructors. It is safe for concurrent
// reads once registration is finished.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry holding every record type the API
// returns.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{"WorkSummary", "PeopleSummary", "OrgsSummary", "FamilySummary", "WorkareaSummary", "ReferralSummary", "Workarea"} {
		r.Register(name, Summary(name))
	}
	r.Register("Work", func(f *Fields) Record { return NewWork(f) })
	r.Register("Referral", func(f *Fields) Record { return NewReferral(f) })
	r.Register("People", func(f *Fields) Record { return NewPeople(f) })
	r.Register("Orgs", func(f *Fields) Record { return NewOrgs(f) })
	r.Register("Family", func(f *Fields) Record { return NewFamily(f) })
	r.Register("Relationship", func(f *Fields) Record { return NewRelationship(f) })
	r.Register("GroupMembership", func(f *Fields) Record { return NewGroupMembership(f) })
	return r
}

// Summary returns a constructor for a read-only record named name.
func Summary(name string) Constructor {
	return func(f *Fields) Record { return NewBase(name, f) }
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, ctor Constructor) {
	if r.ctors == nil {
		r.ctors = make(map[string]Constructor)
	}
	r.ctors[name] = ctor
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.ctors[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve derives the record type name for a fetch: the capitalised action,
// suffixed with "Summary" unless a single record was requested.
func Resolve(action, method string) string {
	name := capitalize(strings.TrimSpace(action))
	if method != api.MethodOne {
		name += "Summary"
	}
	return name
}

// New builds a record of type name. Unregistered names produce a read-only
// record carrying that name.
func (r *Registry) New(name string, fields *Fields) Record {
	if r != nil {
		if ctor, ok := r.ctors[name]; ok {
			return ctor(fields)
		}
	}
	return NewBase(name, fields)
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
