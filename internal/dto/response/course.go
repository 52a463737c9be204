package response

import (
	"time"

	"lms-backend/internal/data/entity"
)

type InstructorResponse struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type CourseResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Department   string             `json:"department"`
	Price        float64            `json:"price"`
	Duration     int                `json:"duration"`
	ImageURL     *string            `json:"image_url,omitempty"`
	DocumentURL  *string            `json:"document_url,omitempty"`
	ExternalLink *string            `json:"external_link,omitempty"`
	IsActive     bool               `json:"is_active"`
	Instructor   InstructorResponse `json:"instructor"`
	LessonCount  int                `json:"lesson_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type CourseDetailResponse struct {
	CourseResponse
	Lessons []LessonResponse `json:"lessons"`
}

func CourseToResponse(c *entity.Course) CourseResponse {
	return CourseResponse{
		ID:           c.ID.String(),
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Department:   c.Department,
		Price:        c.Price,
		Duration:     c.Duration,
		ImageURL:     c.ImageURL,
		DocumentURL:  c.DocumentURL,
		ExternalLink: c.ExternalLink,
		IsActive:     c.IsActive,
		Instructor: InstructorResponse{
			ID:    c.InstructorID.String(),
			Name:  c.InstructorName,
			Email: c.InstructorEmail,
		},
		LessonCount: c.LessonCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func CoursesToResponse(courses []*entity.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseToResponse(c))
	}
	return out
}
