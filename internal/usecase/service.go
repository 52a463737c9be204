package usecase

import (
	"lms-backend/internal/data/repository"
	"lms-backend/pkg/storage"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Department DepartmentService
	Course     CourseService
	Lesson     LessonService
	Enrollment EnrollmentService
	Upload     UploadService
	Asset      AssetService
}

// NewService builds every service. store may be nil when no object storage
// driver is configured.
func NewService(
	repo *repository.Repository,
	issuer PasscodeIssuer,
	store storage.ObjectStorage,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	policy := NewRegistrationPolicy(config.Registration, repo.Department)

	return &Service{
		Auth:       NewAuthService(repo.User, issuer, policy, config.Registration.EmailDomain, log),
		User:       NewUserService(repo.User, log),
		Department: NewDepartmentService(repo.Department, repo.User, log),
		Course:     NewCourseService(repo, log),
		Lesson:     NewLessonService(repo, config.Lesson.EditorRoles, log),
		Enrollment: NewEnrollmentService(repo, log),
		Upload:     NewUploadService(store, config.Lesson.EditorRoles, log),
		Asset:      NewAssetService(repo.Asset, log),
	}
}
