package api

// submissions lists the action/method pairs handled by the datain module.
var submissions = map[string]struct{}{
	ActionWork + "/" + MethodAttend:         {},
	ActionReferral + "/" + MethodAdd:        {},
	ActionPeople + "/" + MethodAdd:          {},
	ActionPeople + "/" + MethodUpdate:       {},
	ActionOrgs + "/" + MethodAdd:            {},
	ActionOrgs + "/" + MethodUpdate:         {},
	ActionFamily + "/" + MethodAdd:          {},
	ActionFamily + "/" + MethodUpdate:       {},
	ActionPeople + "/" + MethodRelationship: {},
	ActionPeople + "/" + MethodGroup:        {},
}

// IsSubmission reports whether action/method is a datain operation.
func IsSubmission(action, method string) bool {
	_, ok := submissions[action+"/"+method]
	return ok
}

// IsFetch reports whether method is one of one, some or all.
func IsFetch(method string) bool {
	switch method {
	case MethodOne, MethodSome, MethodAll:
		return true
	}
	return false
}
