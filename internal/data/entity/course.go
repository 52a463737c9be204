package entity

import "github.com/google/uuid"

type Course struct {
	BaseNoDelete
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	Department   string    `db:"department"`
	Price        float64   `db:"price"`
	Duration     int       `db:"duration"`
	ImageURL     *string   `db:"image_url"`
	DocumentURL  *string   `db:"document_url"`
	ExternalLink *string   `db:"external_link"`
	InstructorID uuid.UUID `db:"instructor_id"`
	IsActive     bool      `db:"is_active"`

	// Joined columns, populated by list/detail queries only.
	InstructorName  *string `db:"-"`
	InstructorEmail *string `db:"-"`
	LessonCount     int     `db:"-"`
}

// CanManage reports whether a caller may edit or delete the course.
func (c *Course) CanManage(userID uuid.UUID, role string) bool {
	return role == RoleAdmin || c.InstructorID == userID
}
