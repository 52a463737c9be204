package utils

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// GenerateObjectKey builds "<folder>/<unix-millis>-<short-uuid>-<sanitized name>".
func GenerateObjectKey(folder, fileName string, now time.Time) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(fileName), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}

	prefix := strings.Trim(unsafeKeyChars.ReplaceAllString(folder, "_"), "/_")
	if prefix == "" {
		prefix = "uploads"
	}

	return prefix + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString()[:8] + "-" + name
}

// ParseInt converts value to a positive int, falling back to defaultValue.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}
