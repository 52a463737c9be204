package response

import (
	"time"

	"lms-backend/internal/data/entity"
)

type EnrollmentResponse struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	CourseID              string     `json:"course_id"`
	Status                string     `json:"status"`
	Progress              int        `json:"progress"`
	EnrolledAt            time.Time  `json:"enrolled_at"`
	CompletionRequestedAt *time.Time `json:"completion_requested_at,omitempty"`
	CompletionNotes       *string    `json:"completion_notes,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	AdminApprovedAt       *time.Time `json:"admin_approved_at,omitempty"`
	AdminApprovedBy       *string    `json:"admin_approved_by,omitempty"`
	UserName              *string    `json:"user_name,omitempty"`
	UserEmail             *string    `json:"user_email,omitempty"`
	CourseTitle           *string    `json:"course_title,omitempty"`
}

type EnrollmentCheckResponse struct {
	Enrolled   bool                `json:"enrolled"`
	Enrollment *EnrollmentResponse `json:"enrollment,omitempty"`
}

func EnrollmentToResponse(e *entity.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:                    e.ID.String(),
		UserID:                e.UserID.String(),
		CourseID:              e.CourseID.String(),
		Status:                string(e.Status),
		Progress:              e.Progress,
		EnrolledAt:            e.EnrolledAt,
		CompletionRequestedAt: e.CompletionRequestedAt,
		CompletionNotes:       e.CompletionNotes,
		CompletedAt:           e.CompletedAt,
		AdminApprovedAt:       e.AdminApprovedAt,
		UserName:              e.UserName,
		UserEmail:             e.UserEmail,
		CourseTitle:           e.CourseTitle,
	}
	if e.AdminApprovedBy != nil {
		by := e.AdminApprovedBy.String()
		resp.AdminApprovedBy = &by
	}
	return resp
}

func EnrollmentsToResponse(list []*entity.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EnrollmentToResponse(e))
	}
	return out
}
