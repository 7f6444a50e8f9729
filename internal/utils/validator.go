package utils // package utils provides validation and token helpers shared across layers

import (
	"regexp"
	"strings"
)

// Input format rules.  Slot codes and vehicle plates are validated
// after uppercase normalization, so lowercase input is accepted and
// stored uppercase.
var (
	slotCodeRe = regexp.MustCompile(`^[A-Z0-9-]{1,10}$`)
	vehicleRe  = regexp.MustCompile(`^[A-Z0-9-]{4,15}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
)

// NormalizeCode trims and uppercases a slot code or vehicle number.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSlotCode reports whether the (normalized) slot code is well formed.
func ValidSlotCode(code string) bool {
	return slotCodeRe.MatchString(NormalizeCode(code))
}

// ValidVehicleNumber reports whether the (normalized) plate is well formed.
func ValidVehicleNumber(plate string) bool {
	return vehicleRe.MatchString(NormalizeCode(plate))
}

// ValidUsername checks for 3-20 alphanumeric/underscore characters.
func ValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	return usernameRe.MatchString(username)
}

// ValidEmail performs a basic shape check on an email address.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidPhone expects exactly ten digits.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ValidPassword enforces the minimum password length.
func ValidPassword(password string) bool {
	return len(password) >= 6
}
