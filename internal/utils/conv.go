package utils

import (
	"strconv"
)

// StringToInt converts string to int, returns def if error or out of [min, max]
func StringToInt(s string, def, min, max int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < min || i > max {
		return def
	}
	return i
}
