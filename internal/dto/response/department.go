package response

import (
	"time"

	"lms-backend/internal/data/entity"
)

type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Roles       []string  `json:"roles"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func DepartmentToResponse(d *entity.Department) DepartmentResponse {
	roles := d.Roles
	if roles == nil {
		roles = []string{}
	}
	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Roles:       roles,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

func DepartmentsToResponse(depts []*entity.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, DepartmentToResponse(d))
	}
	return out
}
