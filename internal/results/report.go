package results

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/inazy-arch/tf-fast-app/internal/members"
)

var jpWeekdays = []string{"日", "月", "火", "水", "木", "金", "土"}

// ReportTitle is the news headline used when a competition report is
// published.
func ReportTitle(compName string) string {
	return fmt.Sprintf("【結果報告】%s", compName)
}

// BuildReport renders the plain-text result report for one competition:
// a dated intro line, results grouped by event in heat/lane order and a
// closing line. senderName, when non-empty, prefixes the report with a
// greeting for mail use.
func (r *Repo) BuildReport(compID, senderName string) (string, error) {
	views, err := r.ListViews(compID)
	if err != nil {
		return "", err
	}
	if len(views) == 0 {
		return "", fmt.Errorf("結果がありません")
	}

	comp, err := r.comps.Get(compID)
	if err != nil {
		return "", err
	}
	location := comp.Location
	if location == "" {
		location = "競技場"
	}

	list, err := r.members.List()
	if err != nil {
		return "", err
	}
	grades := make(map[string]string, len(list))
	for _, m := range list {
		grades[m.ID] = members.Grade(m.GradYear, m.UnivCat)
	}

	var b strings.Builder
	if senderName != "" {
		fmt.Fprintf(&b, "こんばんは\n広報の%sです。\n", senderName)
	}
	if t, err := time.Parse("2006-01-02", comp.Date); err == nil {
		fmt.Fprintf(&b, "%d月%d日（%s）に%sにて行われた、%sの結果をお知らせいたします。\n",
			int(t.Month()), t.Day(), jpWeekdays[t.Weekday()], location, comp.Name)
	} else {
		fmt.Fprintf(&b, "%sに%sにて行われた、%sの結果をお知らせいたします。\n",
			comp.Date, location, comp.Name)
	}

	byEvent := map[string][]View{}
	var order []string
	for _, v := range views {
		if _, ok := byEvent[v.Event]; !ok {
			order = append(order, v.Event)
		}
		byEvent[v.Event] = append(byEvent[v.Event], v)
	}

	for _, ev := range order {
		rows := byEvent[ev]
		sort.SliceStable(rows, func(i, j int) bool {
			hi, hj := numeric(rows[i].Heat), numeric(rows[j].Heat)
			if hi != hj {
				return hi < hj
			}
			return numeric(rows[i].Lane) < numeric(rows[j].Lane)
		})
		fmt.Fprintf(&b, "\n▼%s\n", ev)
		for _, v := range rows {
			line := reportLine(v, grades[v.MemberID])
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n結果は以上です。お疲れ様でした。")
	return b.String(), nil
}

func reportLine(v View, grade string) string {
	var parts []string
	if v.Heat != "" || v.Lane != "" {
		parts = append(parts, fmt.Sprintf("%s-%s", v.Heat, v.Lane))
	}
	name := v.MemberName
	if grade != "" && grade != "-" {
		name = fmt.Sprintf("%s(%s)", name, grade)
	}
	parts = append(parts, name, v.Result.Result)
	if v.Comment != "" {
		parts = append(parts, v.Comment)
	}
	return strings.Join(parts, " ")
}

// numeric sorts heat and lane labels: plain numbers first in numeric
// order, everything else after them in insertion order.
func numeric(s string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return 1 << 30
}
