package cache

import "strings"

const (
	GlobalKeyPrefix = "quizdeck"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ActiveQuizListKey is the cache key for the student-facing active quiz
// listing.
func ActiveQuizListKey() string {
	return GenerateCacheKey("quiz", "list", "active")
}

// QuizByIDKey is the cache key for a single quiz fetched by id.
func QuizByIDKey(quizID string) string {
	return GenerateCacheKey("quiz", "detail", quizID)
}
