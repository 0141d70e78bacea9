package format

import (
	"strconv"
	"strings"
)

// PrettyNumber groups the digits of n by thousands using separator,
// e.g. PrettyNumber(-12345, " ") == "-12 345".
func PrettyNumber(n int, separator string) string {
	numStr := strconv.Itoa(n)

	if separator == "" {
		return numStr
	}

	isNegative := strings.HasPrefix(numStr, "-")
	numStr = strings.TrimPrefix(numStr, "-")

	length := len(numStr)

	start := length % 3
	if start == 0 {
		start = 3
	}

	var intPart strings.Builder

	if isNegative {
		intPart.WriteString("-")
	}

	intPart.WriteString(numStr[:start])

	for i := start; i < length; i += 3 {
		intPart.WriteString(separator)
		intPart.WriteString(numStr[i : i+3])
	}

	return intPart.String()
}
