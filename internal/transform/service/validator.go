package service

import "strings"

// ValidateEmail reports whether an email has exactly one "@", a non-empty
// local part, and a domain containing at least one "." with non-empty
// labels. Invalid emails flag the customer row, they never drop it.
func ValidateEmail(email string) bool {
	at := strings.Count(email, "@")
	if at != 1 {
		return false
	}

	idx := strings.IndexByte(email, '@')
	local, dom := email[:idx], email[idx+1:]
	if local == "" {
		return false
	}
	if !strings.Contains(dom, ".") {
		return false
	}
	for _, label := range strings.Split(dom, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
