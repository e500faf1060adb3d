package entity

// Role represents a portal user role
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RolePatient    Role = "patient"
	RolePharmacist Role = "pharmacist"
)

// Roles lists every role in display order
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient, RolePharmacist}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient, RolePharmacist:
		return true
	}
	return false
}

// IDPrefix returns the prefix used for user ids of this role
func (r Role) IDPrefix() string {
	if prefix, ok := roleIDPrefixes[r]; ok {
		return prefix
	}
	return "U"
}
