package utils

import "strings"

func IsValidValueOfConstant(value string, constantValues []string) bool {
	for _, r := range constantValues {
		if r == value {
			return true
		}
	}
	return false
}

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
