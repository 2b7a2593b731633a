// Package records turns free-text performance strings into comparable
// values and picks the better of two marks.
//
// Result cells come straight out of hand-edited sheets: "11.50", "1:02.3",
// "10’13″77", "4m05", "DNS (腰痛)". Parsing is therefore permissive and
// never returns an error; anything it cannot read counts as "no mark".
package records

import (
	"regexp"
	"strconv"
	"strings"
)

// Non-performance tokens. Matched case-insensitively after trimming.
var sentinels = map[string]bool{
	"":    true,
	"-":   true,
	"DNS": true,
	"DNF": true,
	"DQ":  true,
	"NM":  true,
	"UK":  true,
}

// Parenthetical annotations (wind readings, manual-timing notes), both
// ASCII and full-width.
var parenRe = regexp.MustCompile(`[\(（][^\)）]*[\)）]`)

// Glyph variants seen in imported sheets, folded to ":" and ".".
var glyphs = strings.NewReplacer(
	"m", ".", "M", ".", "ｍ", ".",
	"'", ":", "’", ":", "′", ":", "：", ":",
	`"`, ".", "”", ".", "″", ".",
)

// Parse converts a result string into seconds (track) or a plain decimal
// (field distances, combined-event points). The second return is false for
// sentinels and anything unparseable.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if sentinels[strings.ToUpper(s)] {
		return 0, false
	}
	s = strings.TrimSpace(glyphs.Replace(parenRe.ReplaceAllString(s, "")))

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		m, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		sec, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false
		}
		return h*3600 + m*60 + sec, true
	case 2:
		m, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		sec, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return m*60 + sec, true
	case 1:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Event names containing any of these are measured events where bigger is
// better. Everything else is treated as timed. A substring heuristic, so an
// event name containing one of these incidentally will always be
// misclassified; the sheet's event names are controlled enough that this
// has held up.
var fieldKeywords = []string{"跳", "投", "得点", "競技"}

// IsTrackEvent reports whether lower values are better for the event.
func IsTrackEvent(event string) bool {
	for _, k := range fieldKeywords {
		if strings.Contains(event, k) {
			return false
		}
	}
	return true
}

// Better returns whichever of a and b is the better mark for the event.
// An unparseable side loses by default; if both are unparseable it returns
// "-". The first argument wins ties.
func Better(a, b, event string) string {
	va, okA := Parse(a)
	vb, okB := Parse(b)
	switch {
	case !okA && !okB:
		return "-"
	case !okA:
		return b
	case !okB:
		return a
	}
	if IsTrackEvent(event) {
		if va <= vb {
			return a
		}
		return b
	}
	if va >= vb {
		return a
	}
	return b
}

// FindBest scans items and returns the one with the best parseable mark for
// the event, extracting the mark string through value. Comparison is strict,
// so the first of equal marks wins. The second return is false when no item
// has a parseable mark.
func FindBest[T any](items []T, event string, value func(T) string) (T, bool) {
	var best T
	var bestVal float64
	found := false
	track := IsTrackEvent(event)
	for _, it := range items {
		v, ok := Parse(value(it))
		if !ok {
			continue
		}
		if !found {
			best, bestVal, found = it, v, true
			continue
		}
		if (track && v < bestVal) || (!track && v > bestVal) {
			best, bestVal = it, v
		}
	}
	return best, found
}
