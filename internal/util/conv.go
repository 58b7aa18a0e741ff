package util

import (
	"strconv"
)

// MustParseUint converts a string to uint, returning 0 when it does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
