// ABOUTME: Rune-aware string truncation helpers
// ABOUTME: Used wherever summaries and extracted page text are cut to fixed lengths

package text

// Truncate returns at most max runes of s. A non-positive max yields "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}

	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// TruncateWithEllipsis truncates s to max runes and appends "..." when
// anything was cut.
func TruncateWithEllipsis(s string, max int) string {
	cut := Truncate(s, max)
	if len(cut) < len(s) {
		return cut + "..."
	}
	return s
}

// Len returns the number of runes in s.
func Len(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
