package usecase

import (
	"lms-backend/internal/data/entity"
	"lms-backend/pkg/token"

	"github.com/google/uuid"
)

// Actor is the authenticated caller a service acts on behalf of.
type Actor struct {
	ID         uuid.UUID
	Role       string
	Department *string
}

// ActorFromIdentity converts a verified token identity. It returns nil for a
// nil identity or one whose id is not a uuid.
func ActorFromIdentity(identity *token.Identity) *Actor {
	if identity == nil {
		return nil
	}
	id, err := uuid.Parse(identity.ID)
	if err != nil {
		return nil
	}
	return &Actor{ID: id, Role: identity.Role, Department: identity.Department}
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

// SeesAllCourses reports whether the caller bypasses department scoping.
func (a *Actor) SeesAllCourses() bool {
	return a != nil && (a.Role == entity.RoleAdmin || a.Role == entity.RoleGeneral)
}
