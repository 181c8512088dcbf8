package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields. Title and description bounds match
// the column widths in the schema.
const (
	maxTitleLen       = 156
	maxDescriptionLen = 3000
	maxUsernameLen    = 150
)

// validateArticle checks article form inputs and returns the first error found.
func validateArticle(title, description string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 156 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 3,000 characters)."
	}
	return ""
}

// validateCategory checks category form inputs.
func validateCategory(title string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 156 characters)."
	}
	return ""
}

// validateUsername checks the username field shared by sign-up and user edit.
func validateUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Username is required."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 150 characters)."
	}
	return ""
}

// validatePasswordPair checks that a password was provided twice and matches.
func validatePasswordPair(password1, password2 string) string {
	if password1 == "" {
		return "Password is required."
	}
	if password1 != password2 {
		return "Passwords do not match."
	}
	return ""
}
