package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

const passwordSymbols = "@$!%*?&#"

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidPassword reports whether s is at least 8 characters long, contains
// an uppercase letter, a lowercase letter, a digit and one of @$!%*?&#,
// and contains no characters outside that set.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case containsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false // character outside the allowed set
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

func containsRune(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
