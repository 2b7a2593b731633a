package members

import (
	"fmt"
	"time"
)

// Grade renders the current year label (B1..B4, M1..M2, D1..D3) from the
// expected graduation year and course category. "-" when it cannot be
// determined or falls outside the course length.
func Grade(gradYear int, univCat string) string {
	return gradeAt(gradYear, univCat, time.Now())
}

func gradeAt(gradYear int, univCat string, now time.Time) string {
	if gradYear <= 0 {
		return "-"
	}
	// Japanese academic year starts in April.
	fiscal := now.Year()
	if now.Month() < time.April {
		fiscal--
	}
	yearsLeft := (gradYear - 1) - fiscal

	var prefix string
	var length int
	switch univCat {
	case "学部":
		prefix, length = "B", 4
	case "修士":
		prefix, length = "M", 2
	case "博士":
		prefix, length = "D", 3
	default:
		return "-"
	}
	n := length - yearsLeft
	if n < 1 || n > length {
		return "-"
	}
	return fmt.Sprintf("%s%d", prefix, n)
}
