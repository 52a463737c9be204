package entity

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive              EnrollmentStatus = "active"
	EnrollmentStatusCompletionRequested EnrollmentStatus = "completion_requested"
	EnrollmentStatusCompleted           EnrollmentStatus = "completed"
	EnrollmentStatusDropped             EnrollmentStatus = "dropped"
)

type Enrollment struct {
	BaseSimple
	UserID                uuid.UUID        `db:"user_id"`
	CourseID              uuid.UUID        `db:"course_id"`
	Status                EnrollmentStatus `db:"status"`
	Progress              int              `db:"progress"`
	EnrolledAt            time.Time        `db:"enrolled_at"`
	CompletionRequestedAt *time.Time       `db:"completion_requested_at"`
	CompletionNotes       *string          `db:"completion_notes"`
	CompletedAt           *time.Time       `db:"completed_at"`
	AdminApprovedAt       *time.Time       `db:"admin_approved_at"`
	AdminApprovedBy       *uuid.UUID       `db:"admin_approved_by"`

	// Joined columns
	UserName    *string `db:"-"`
	UserEmail   *string `db:"-"`
	CourseTitle *string `db:"-"`
}

// CanAccess reports whether a caller may act on the enrollment as its owner.
func (e *Enrollment) CanAccess(userID uuid.UUID, role string) bool {
	return role == RoleAdmin || e.UserID == userID
}

// RequestCompletion moves active -> completion_requested.
func (e *Enrollment) RequestCompletion(notes *string, now time.Time) bool {
	if e.Status != EnrollmentStatusActive {
		return false
	}
	e.Status = EnrollmentStatusCompletionRequested
	e.CompletionRequestedAt = &now
	e.CompletionNotes = notes
	return true
}

// Approve moves completion_requested -> completed and stamps the approver.
func (e *Enrollment) Approve(adminID uuid.UUID, now time.Time) bool {
	if e.Status != EnrollmentStatusCompletionRequested {
		return false
	}
	e.Status = EnrollmentStatusCompleted
	e.CompletedAt = &now
	e.AdminApprovedAt = &now
	e.AdminApprovedBy = &adminID
	return true
}

// Reject sends completion_requested back to active.
func (e *Enrollment) Reject(notes *string) bool {
	if e.Status != EnrollmentStatusCompletionRequested {
		return false
	}
	if notes == nil || *notes == "" {
		defaultNotes := "Completion request rejected"
		notes = &defaultNotes
	}
	e.Status = EnrollmentStatusActive
	e.CompletionRequestedAt = nil
	e.CompletionNotes = notes
	return true
}

type EnrollmentStats struct {
	Total               int `json:"total"`
	Active              int `json:"active"`
	Completed           int `json:"completed"`
	CompletionRequested int `json:"completion_requested"`
	Dropped             int `json:"dropped"`
}
