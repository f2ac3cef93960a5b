package record

import (
	"net/url"
	"strings"

	"github.com/five82/lamplight/api"
)

// Profile is a people, orgs or family record. It is added when it has no id
// and updated otherwise.
type Profile struct {
	*mutable
	role string
}

var _ Mutable = (*Profile)(nil)

// NewPeople wraps fields as a People profile.
func NewPeople(fields *Fields) *Profile { return newProfile("People", api.ActionPeople, fields) }

// NewOrgs wraps fields as an Orgs profile.
func NewOrgs(fields *Fields) *Profile { return newProfile("Orgs", api.ActionOrgs, fields) }

// NewFamily wraps fields as a Family profile.
func NewFamily(fields *Fields) *Profile { return newProfile("Family", api.ActionFamily, fields) }

func newProfile(kind, action string, fields *Fields) *Profile {
	return &Profile{mutable: newMutable(kind, action, api.MethodAdd, fields)}
}

// Init takes the role from the request that fetched the profile.
func (p *Profile) Init(rc api.RequestContext) {
	p.role = rc.Parameter("role")
}

// Role returns the profile role.
func (p *Profile) Role() string { return p.role }

// SetRole sets the role unless one is already known.
func (p *Profile) SetRole(role string) {
	if p.role == "" {
		p.role = role
	}
}

// Set implements Mutable.
func (p *Profile) Set(field string, value any) error {
	if !p.editable {
		return ErrNotEditable
	}
	if strings.EqualFold(field, "role") {
		p.SetRole(formatValue(value))
		return nil
	}
	return p.set(field, value)
}

// BeforeSave implements Mutable.
func (p *Profile) BeforeSave() {
	if p.ID() > 0 {
		p.method = api.MethodUpdate
	} else {
		p.method = api.MethodAdd
	}
}

// Submission implements Mutable.
func (p *Profile) Submission() (url.Values, error) {
	form := url.Values{}
	form.Set("role", p.role)
	for name, value := range p.fields.All() {
		form.Del(name)
		appendForm(form, name, value)
	}
	return form, nil
}
