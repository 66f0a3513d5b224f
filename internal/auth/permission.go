package auth

import "strings"

// Permission is a capability bitmask carried in the x_permission_level
// claim. Values match tokens already issued by the identity service. The
// type is signed so that -1 grants every bit, as issuers relying on
// two's complement masks expect.
type Permission int64

const (
	PermRead Permission = 1 << iota
	PermCreate
	PermUpdate
	PermDelete
)

var permissionNames = []struct {
	perm Permission
	name string
}{
	{PermRead, "read"},
	{PermCreate, "create"},
	{PermUpdate, "update"},
	{PermDelete, "delete"},
}

// Has reports whether any bit of required is granted.
func (p Permission) Has(required Permission) bool {
	return p&required != 0
}

func (p Permission) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, pn := range permissionNames {
		if p&pn.perm != 0 {
			names = append(names, pn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
