package model

// OrgUnitRef is an organizational unit resolved from a keyword search.
// The zero value means "unresolved", which is a legitimate terminal outcome
// for callers, not a fault.
type OrgUnitRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsZero reports whether the reference is unresolved
func (o OrgUnitRef) IsZero() bool {
	return o.ID == ""
}
