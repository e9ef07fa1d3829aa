package stringutil

import "fmt"

const ShortenLogLength = 16

// ShortenLog keeps the head and tail of a long identifier for log lines.
func ShortenLog(s string) string {
	if len(s) <= ShortenLogLength {
		return s
	}
	half := ShortenLogLength / 2
	return s[:half] + "..." + s[len(s)-half:]
}

// ShortenKey shortens the string form of an address or hash.
func ShortenKey(k fmt.Stringer) string {
	return ShortenLog(k.String())
}
