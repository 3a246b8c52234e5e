package utils

import (
	"regexp"
	"unicode"
)

// MinPasswordLength is the length below which a shared secret is reported as weak.
const MinPasswordLength = 12

var specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>\[\]\\/_\-+=~` + "`" + `';]`)

// PasswordWeaknesses lists the ways password falls short of the strength
// rules. An empty result means the password is considered strong.
func PasswordWeaknesses(password string) []string {
	var issues []string
	if len([]rune(password)) < MinPasswordLength {
		issues = append(issues, "shorter than 12 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if !hasUpper {
		issues = append(issues, "no uppercase letter")
	}
	if !hasLower {
		issues = append(issues, "no lowercase letter")
	}
	if !hasDigit {
		issues = append(issues, "no digit")
	}
	if !specialCharRegex.MatchString(password) {
		issues = append(issues, "no special character")
	}
	return issues
}
