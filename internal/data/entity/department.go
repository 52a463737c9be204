package entity

import "slices"

type Department struct {
	BaseNoDelete
	Name        string   `db:"name"`
	Roles       []string `db:"roles"`
	Description string   `db:"description"`
}

// HasRole reports whether role is one of the department's configured roles.
func (d *Department) HasRole(role string) bool {
	return slices.Contains(d.Roles, role)
}
