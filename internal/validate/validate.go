package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9áéíóúÁÉÍÓÚñÑ _'\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[0-9]{1,12}$`)
	reCond  = regexp.MustCompile(`^(new|used)$`)
	reDate  = regexp.MustCompile(`^(today|week|month)$`)
)

// University-only marketplace: registrations must come from the
// institutional domain.
const emailDomain = "@campusucc.edu.co"

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 60 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// InstitutionalEmail additionally enforces the university domain; login
// accepts any well-formed address, registration does not.
func InstitutionalEmail(s string) (string, bool) {
	s, ok := Email(s)
	if !ok {
		return "", false
	}
	return s, strings.HasSuffix(strings.ToLower(s), emailDomain)
}

// Q validates a free-text search query: trims, clamps to 50 runes, allows
// letters (accented included), digits and a few separators.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if runes := []rune(s); len(runes) > 50 {
		s = string(runes[:50])
	}
	return s, reQ.MatchString(s)
}

// ProductID validates the numeric backend id carried in URLs and forms.
func ProductID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Condition validates the view-model condition enum.
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCond.MatchString(s)
}

// DatePosted validates the age-window filter value.
func DatePosted(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reDate.MatchString(s)
}

// Price parses a non-negative price form value; empty means unset.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Name validates a displayable name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces the backend's minimum length before we bother it.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 72
}

// PageNumber parses a 1-based page parameter, defaulting to 1.
func PageNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
