package utils

import (
	"strings"
)

func StringSliceContains(value string, values []string) bool {
	for _, v := range values {
		if strings.EqualFold(value, v) {
			return true
		}
	}

	return false
}

// Unique returns values without case-insensitive duplicates, keeping first occurrences in order.
func Unique(values []string) []string {
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !StringSliceContains(v, unique) {
			unique = append(unique, v)
		}
	}

	return unique
}
