package request

type CourseRequest struct {
	Title        string  `json:"title" validate:"required,min=3,max=255"`
	Description  string  `json:"description" validate:"required"`
	Category     string  `json:"category" validate:"max=100"`
	Department   string  `json:"department" validate:"required,max=255"`
	Price        float64 `json:"price" validate:"gte=0"`
	Duration     int     `json:"duration" validate:"gte=0"`
	ImageURL     *string `json:"image_url,omitempty" validate:"omitempty,url"`
	DocumentURL  *string `json:"document_url,omitempty" validate:"omitempty,url"`
	ExternalLink *string `json:"external_link,omitempty" validate:"omitempty,url"`
	InstructorID *string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type ListCoursesRequest struct {
	PaginatedRequest
	Search          string `json:"q"`
	IncludeInactive bool   `json:"include_inactive"`
}
