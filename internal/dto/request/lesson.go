package request

type LessonRequest struct {
	Title      string  `json:"title" validate:"required,min=1,max=255"`
	Content    string  `json:"content"`
	VideoURL   *string `json:"video_url,omitempty" validate:"omitempty,url"`
	Duration   int     `json:"duration" validate:"gte=0"`
	OrderIndex *int    `json:"order_index,omitempty" validate:"omitempty,gte=1"`
}

type ReorderLessonsRequest struct {
	LessonIDs []string `json:"lesson_ids" validate:"required,min=1,dive,uuid"`
}
