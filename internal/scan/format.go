package scan

import "strings"

// FormatCode renders a scanned code for display, grouping digits from the
// right: groups of 6 for ean13, 4 for ean8, unchanged for anything else. The
// stored code is never mutated; this is purely a display transform.
//
// A separator is inserted at a position only when both neighbours are word
// characters and the digit run to the right of the position is an exact
// multiple of the group size, so a 13-digit EAN renders as "4 058172 694974".
func FormatCode(code, codeType string) string {
	var group int
	switch codeType {
	case SymEAN13:
		group = 6
	case SymEAN8:
		group = 4
	default:
		return code
	}

	var b strings.Builder
	for i := 0; i < len(code); i++ {
		if i > 0 && isWord(code[i-1]) && isWord(code[i]) {
			if run := digitRun(code[i:]); run > 0 && run%group == 0 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(code[i])
	}
	return b.String()
}

// digitRun returns the length of the leading digit run of s.
func digitRun(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWord(c byte) bool {
	return isDigit(c) || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
