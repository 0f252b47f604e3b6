// Package character models the catalog's character roles.
package character

import "strings"

// Role identifies the character role label stored in character_types.
type Role string

const (
	RoleUnspecified Role = ""
	RoleHero        Role = "hero"
	RoleEnemy       Role = "enemy"
)

// Roles lists the canonical roles in seed order.
func Roles() []Role {
	return []Role{RoleHero, RoleEnemy}
}

// NormalizeRole parses a role label into a canonical value.
func NormalizeRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hero":
		return RoleHero, true
	case "enemy":
		return RoleEnemy, true
	default:
		return RoleUnspecified, false
	}
}

// Valid reports whether the role is one of the canonical labels.
func (r Role) Valid() bool {
	return r == RoleHero || r == RoleEnemy
}

// DisplayName returns the seeded human-readable label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleHero:
		return "Hero"
	case RoleEnemy:
		return "Enemy"
	default:
		return ""
	}
}
