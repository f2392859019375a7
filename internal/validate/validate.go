package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reSlug  = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Slug validates category / brand identifiers.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSlug.MatchString(s)
}

// ProductID parses a numeric product id from a form or route value.
func ProductID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

func Count(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 30 {
		return "", false
	}
	return s, true
}

// PasswordIssues lists every policy violation so the register form can
// surface them all at once. Empty slice means the password is acceptable.
func PasswordIssues(s string) []string {
	var out []string
	if l := len(s); l < 8 || l > 30 {
		out = append(out, "Password must be between 8 and 30 characters")
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasLower {
		out = append(out, "Password must contain a lowercase letter")
	}
	if !hasUpper {
		out = append(out, "Password must contain an uppercase letter")
	}
	if !hasDigit {
		out = append(out, "Password must contain a digit")
	}
	if !hasSymbol {
		out = append(out, "Password must contain a symbol")
	}
	return out
}

// Password is the yes/no form used on login, where individual policy
// violations are never surfaced.
func Password(s string) bool { return len(PasswordIssues(s)) == 0 }

// Subject/Message bounds for product comments.
func Subject(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 1000 {
		return "", false
	}
	return s, true
}
