package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for category, nav, and account fields.
const (
	maxCategoryNameLen = 50
	maxCategoryDescLen = 200
	minUsernameLen     = 3
	maxUsernameLen     = 50
	minPasswordLen     = 6
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// validateCategory checks category inputs and returns the first error found.
func validateCategory(name, description string, sortOrder int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "category name is required"
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "category name is too long (max 50 characters)"
	}
	if utf8.RuneCountInString(description) > maxCategoryDescLen {
		return "category description is too long (max 200 characters)"
	}
	if sortOrder < 0 {
		return "sort_order must be a non-negative integer"
	}
	return ""
}

// validateNav checks nav inputs and returns the first error found.
func validateNav(title, url string, sortOrder int) string {
	if strings.TrimSpace(title) == "" {
		return "nav title is required"
	}
	if strings.TrimSpace(url) == "" {
		return "nav url is required"
	}
	if sortOrder < 0 {
		return "sort_order must be a non-negative integer"
	}
	return ""
}

// validateUsername checks username shape for registration.
func validateUsername(username string) string {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return "username must be between 3 and 50 characters"
	}
	if !usernamePattern.MatchString(username) {
		return "username may only contain letters, digits, and underscores"
	}
	return ""
}

// validatePassword checks password shape for registration.
func validatePassword(password string) string {
	if len(password) < minPasswordLen {
		return "password must be at least 6 characters"
	}
	return ""
}
