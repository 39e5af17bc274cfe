// Package markdown renders parsed reports as markdown sections for PR
// comments and GitHub step summaries. Output is deterministic.
package markdown

import (
	"math"
	"math/big"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// toFixed formats v with the given number of decimals, rounding exact ties
// away from zero like JavaScript's Number.prototype.toFixed
func toFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || digits < 0 {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}

	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	x.Mul(x, scale)
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}

// seconds formats a millisecond duration as seconds with two decimals
func seconds(ms float64) string {
	return toFixed(ms/1000, 2) + "s"
}

// plural returns singular when n is 1, else plural
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// firstLine returns s up to the first line break
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// inlineCode wraps s in a code span, widening the fence when s contains backticks
func inlineCode(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return "`` " + s + " ``"
}

const maxPathLength = 40

// displayPath shortens a coverage file path for the breakdown table.
// Paths are made relative to workspaceRoot (or reduced to their base name),
// use forward slashes, and keep only their last 37 characters when too long.
func displayPath(filePath, workspaceRoot string) string {
	p := strings.ReplaceAll(filePath, "\\", "/")
	if workspaceRoot != "" {
		root := strings.ReplaceAll(workspaceRoot, "\\", "/")
		if rel, err := filepath.Rel(root, p); err == nil {
			p = filepath.ToSlash(rel)
		}
	} else {
		p = path.Base(p)
	}

	if utf8.RuneCountInString(p) > maxPathLength {
		runes := []rune(p)
		p = "..." + string(runes[len(runes)-(maxPathLength-3):])
	}
	return p
}
