package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Mail         MailConfig
	Storage      StorageConfig
	HTTP         HTTPConfig
	Registration RegistrationConfig
	Lesson       LessonConfig
	Admin        AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret string
}

// MailConfig drives passcode delivery. When Enabled is false or the API key
// is empty, passcodes are written to the log instead.
type MailConfig struct {
	Enabled   bool
	APIKey    string
	FromEmail string
	FromName  string
}

type StorageConfig struct {
	Driver    string
	Bucket    string
	PublicURL string
	MinIO     MinIOConfig
	S3        S3Config
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

type RegistrationConfig struct {
	Policy      string
	Roles       []string
	EmailDomain string
}

type LessonConfig struct {
	EditorRoles []string
}

type AdminConfig struct {
	Email    string
	Password string
}

const (
	StorageDriverNone  = ""
	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"

	RegistrationPolicyDepartment = "department"
	RegistrationPolicyAllowList  = "allowlist"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// LoadConfig reads envFile when it exists, then lets environment variables
// override it.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "lms-backend")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MAIL_ENABLED", false)
	v.SetDefault("SENDGRID_FROM_NAME", "LMS")
	v.SetDefault("STORAGE_DRIVER", StorageDriverNone)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("REGISTRATION_POLICY", RegistrationPolicyDepartment)
	v.SetDefault("REGISTRATION_ROLES", "associate_project_manager,assistant_project_manager,principal_software_engineer,software_engineer,qa_engineer,general")
	v.SetDefault("LESSON_EDITOR_ROLES", "admin,associate_project_manager,assistant_project_manager,principal_software_engineer")

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		Mail: MailConfig{
			Enabled:   v.GetBool("MAIL_ENABLED"),
			APIKey:    v.GetString("SENDGRID_API_KEY"),
			FromEmail: v.GetString("SENDGRID_FROM_EMAIL"),
			FromName:  v.GetString("SENDGRID_FROM_NAME"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
			},
			S3: S3Config{
				Region:          v.GetString("S3_REGION"),
				AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
				Endpoint:        v.GetString("S3_ENDPOINT"),
			},
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: SplitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Registration: RegistrationConfig{
			Policy:      strings.ToLower(v.GetString("REGISTRATION_POLICY")),
			Roles:       SplitList(v.GetString("REGISTRATION_ROLES")),
			EmailDomain: strings.ToLower(strings.TrimPrefix(v.GetString("REGISTRATION_EMAIL_DOMAIN"), "@")),
		},
		Lesson: LessonConfig{
			EditorRoles: SplitList(v.GetString("LESSON_EDITOR_ROLES")),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(v.GetString("ADMIN_EMAIL")),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}

	switch c.Storage.Driver {
	case StorageDriverNone, StorageDriverMinIO, StorageDriverS3:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Registration.Policy {
	case RegistrationPolicyDepartment, RegistrationPolicyAllowList:
	default:
		return fmt.Errorf("unknown REGISTRATION_POLICY %q", c.Registration.Policy)
	}

	if c.HTTP.RateLimitRequests <= 0 || c.HTTP.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d per %s", c.HTTP.RateLimitRequests, c.HTTP.RateLimitWindow)
	}

	return nil
}

// MailEnabled reports whether SendGrid delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.Enabled && c.Mail.APIKey != "" && c.Mail.FromEmail != ""
}

// SplitList splits a comma-separated value, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
