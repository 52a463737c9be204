package request

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type CompletionRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}
