package response

import (
	"time"

	"lms-backend/internal/data/entity"
)

type LessonResponse struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	VideoURL   *string   `json:"video_url,omitempty"`
	Duration   int       `json:"duration"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

func LessonToResponse(l *entity.Lesson) LessonResponse {
	return LessonResponse{
		ID:         l.ID.String(),
		CourseID:   l.CourseID.String(),
		Title:      l.Title,
		Content:    l.Content,
		VideoURL:   l.VideoURL,
		Duration:   l.Duration,
		OrderIndex: l.OrderIndex,
		CreatedAt:  l.CreatedAt,
	}
}

func LessonsToResponse(lessons []*entity.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, LessonToResponse(l))
	}
	return out
}
