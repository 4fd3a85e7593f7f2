package validator

import "regexp"

var loginRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)

func IsValidLogin(login string) bool {
	return loginRe.MatchString(login)
}

// IsValidPassword caps length at 72 bytes because bcrypt ignores the rest.
func IsValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72
}
