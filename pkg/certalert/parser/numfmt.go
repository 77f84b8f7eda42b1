// Package parser provides Excel file parsing utilities.
package parser

import (
	"strings"

	"github.com/xuri/nfp"
)

// builtInDateNumFmts lists the built-in number format IDs that render dates
// or times, including the CJK locale variants.
var builtInDateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateNumFmt reports whether a number format renders a date. Custom codes
// count as dates when the first section holds a day or year token.
func isDateNumFmt(numFmt int, custom string) bool {
	if custom == "" {
		return builtInDateNumFmts[numFmt]
	}

	p := nfp.NumberFormatParser()
	sections := p.Parse(custom)
	if len(sections) == 0 {
		return false
	}
	// Only the first section applies to positive numbers.
	for _, token := range sections[0].Items {
		if token.TType != nfp.TokenTypeDateTimes {
			continue
		}
		if strings.ContainsAny(strings.ToLower(token.TValue), "dy") {
			return true
		}
	}
	return false
}
