package repository

import (
	"errors"

	"lms-backend/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by mutations that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	DB         database.PgxIface
	User       UserRepository
	OTP        OTPRepository
	Department DepartmentRepository
	Course     CourseRepository
	Lesson     LessonRepository
	Enrollment EnrollmentRepository
	Asset      AssetRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:         db,
		User:       NewUserRepository(db, log),
		OTP:        NewOTPRepository(db, log),
		Department: NewDepartmentRepository(db, log),
		Course:     NewCourseRepository(db, log),
		Lesson:     NewLessonRepository(db, log),
		Enrollment: NewEnrollmentRepository(db, log),
		Asset:      NewAssetRepository(db, log),
	}
}
