package validators

import (
	"net/mail"
	"strings"
)

const MinPasswordLength = 6

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail accepts a bare address with a dotted domain.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

func IsPasswordStrong(password string) bool {
	return len(password) >= MinPasswordLength
}
