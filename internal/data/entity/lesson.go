package entity

import "github.com/google/uuid"

type Lesson struct {
	BaseNoDelete
	CourseID   uuid.UUID `db:"course_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	VideoURL   *string   `db:"video_url"`
	Duration   int       `db:"duration"`
	OrderIndex int       `db:"order_index"`
}
