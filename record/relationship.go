package record

import (
	"net/url"
	"strings"
	"time"

	"github.com/five82/lamplight/api"
)

// Relationship links two profiles with a relationship type.
type Relationship struct {
	*mutable
}

var _ Mutable = (*Relationship)(nil)

// NewRelationship wraps fields as a Relationship.
func NewRelationship(fields *Fields) *Relationship {
	return &Relationship{mutable: newMutable("Relationship", api.ActionPeople, api.MethodRelationship, fields)}
}

// SetRelationship records that profile relates to related via relationshipID.
func (r *Relationship) SetRelationship(profile, related, relationshipID int) {
	if !r.editable {
		return
	}
	r.fields.Set("id", profile)
	r.fields.Set("related_profile_id", related)
	r.fields.Set("relationship_id", relationshipID)
}

// Submission implements Mutable.
func (r *Relationship) Submission() (url.Values, error) {
	form := url.Values{}
	appendForm(form, "id", r.Get("id"))
	appendForm(form, "related_profile_id", r.Get("related_profile_id"))
	appendForm(form, "relationship_id", r.Get("relationship_id"))
	return form, nil
}

// GroupMembership adds a profile to a group.
type GroupMembership struct {
	*mutable
}

var _ Mutable = (*GroupMembership)(nil)

// NewGroupMembership wraps fields as a GroupMembership.
func NewGroupMembership(fields *Fields) *GroupMembership {
	return &GroupMembership{mutable: newMutable("GroupMembership", api.ActionPeople, api.MethodGroup, fields)}
}

// SetGroupMembership sets the profile, group and optional notes and join date.
func (g *GroupMembership) SetGroupMembership(profile, group int, notes string, joined *time.Time) {
	if !g.editable {
		return
	}
	g.fields.Set("id", profile)
	g.fields.Set("group_id", group)
	if notes != "" {
		g.fields.Set("notes", notes)
	}
	if joined != nil && !joined.IsZero() {
		g.fields.Set("date_joined", *joined)
	}
}

// Set implements Mutable.
func (g *GroupMembership) Set(field string, value any) error {
	if !g.editable {
		return ErrNotEditable
	}
	if strings.EqualFold(field, "date_joined") {
		if s, ok := value.(string); ok {
			if t := parseTime(s); !t.IsZero() {
				value = t
			}
		}
		g.fields.Set("date_joined", value)
		return nil
	}
	return g.set(field, value)
}

// Submission implements Mutable.
func (g *GroupMembership) Submission() (url.Values, error) {
	form := url.Values{}
	appendForm(form, "id", g.Get("id"))
	appendForm(form, "group_id", g.Get("group_id"))
	form.Set("notes", formatValue(g.Get("notes")))
	form.Set("date_joined", formatValue(g.Get("date_joined")))
	return form, nil
}
