package entity

// Identity is the authenticated identity attached to one request's context
// after the bearer token has been validated and the subject confirmed to
// still exist. It is request-scoped and never shared across requests.
type Identity struct {
	Subject string // The username the token was issued for.
	Roles   Roles  // The subject's capability set at authentication time.
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role Role) bool {
	if i == nil {
		return false
	}

	return i.Roles.Contains(role)
}
