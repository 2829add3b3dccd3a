// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds. MaxPasswordLength guards against bcrypt's 72-byte
// input limit being hit with absurd inputs.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 128 characters")
	ErrPasswordCommon   = errors.New("password is too common; choose something less guessable")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrWrongEmailDomain = errors.New("email is not in the institutional domain")
)

// commonPasswords is a small blocklist of frequently breached passwords.
// Matching is case-insensitive.
var commonPasswords = map[string]struct{}{
	"123456":    {},
	"password":  {},
	"qwerty":    {},
	"abc123":    {},
	"iloveyou":  {},
	"letmein":   {},
	"football":  {},
	"welcome":   {},
	"monkey":    {},
	"dragon":    {},
	"sunshine":  {},
	"princess":  {},
	"admin":     {},
	"login":     {},
	"passw0rd":  {},
	"starwars":  {},
	"baseball":  {},
	"trustno1":  {},
	"123456789": {},
	"12345678":  {},
}

// ValidatePassword checks length bounds and the common-password blocklist.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if _, found := commonPasswords[strings.ToLower(pw)]; found {
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules returns the human-readable password requirements for display
// on signup and change-password forms.
func PasswordRules() string {
	return "Passwords must be at least 6 characters and not a commonly used password."
}

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plain-text password matches the hash.
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// ValidateEmail checks basic shape: one @, non-empty local part, and a
// domain containing an interior dot.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateInstitutionalEmail checks that email is valid and belongs to the
// given domain (e.g. "hk.ycef.com"). An empty domain disables the check.
func ValidateInstitutionalEmail(email, domain string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if domain == "" {
		return nil
	}
	at := strings.LastIndex(email, "@")
	if !strings.EqualFold(email[at+1:], domain) {
		return ErrWrongEmailDomain
	}
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	if domain == "" {
		return false
	}
	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
