package results

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/tabular"
)

// ImportMapping names the uploaded file's column headers for each result
// field. Name, Event and Result are required; Date and CompName locate the
// competition. Wind may be omitted, in which case it is pulled out of a
// trailing "(+1.2)" on the result cell.
type ImportMapping struct {
	Date     string `form:"col_date"`
	CompName string `form:"col_comp"`
	Name     string `form:"col_name"`
	Event    string `form:"col_event"`
	Division string `form:"col_division"`
	Round    string `form:"col_round"`
	Heat     string `form:"col_heat"`
	Lane     string `form:"col_lane"`
	Result   string `form:"col_result"`
	Wind     string `form:"col_wind"`
	Rank     string `form:"col_rank"`
	Comment  string `form:"col_comment"`
}

type ImportSummary struct {
	Saved        int      `json:"saved"`
	SkippedNames int      `json:"skipped_names"`
	NewComps     int      `json:"new_comps"`
	Errors       []string `json:"errors,omitempty"`
}

var windRe = regexp.MustCompile(`[\(（](.*?)[\)）]`)

// marker glyphs pasted from result sheets fold into the canonical
// separators before parsing.
var markCleaner = strings.NewReplacer(`"`, ".", "”", ".", "'", ":")

// Import loads a results file. Rows are matched to members by normalized
// name; unmatched names are counted and skipped. A (date, comp name) pair
// not on file creates a finished competition to hang the rows on.
func Import(res *Repo, t *tabular.Table, m ImportMapping) (ImportSummary, error) {
	var sum ImportSummary
	for _, col := range []string{m.Name, m.Event, m.Result} {
		if col == "" || !t.HasColumn(col) {
			return sum, fmt.Errorf("column %q not found", col)
		}
	}

	nameIdx, err := res.members.NameIndex()
	if err != nil {
		return sum, err
	}
	comps, err := res.comps.List()
	if err != nil {
		return sum, err
	}
	type compKey struct{ name, date string }
	byKey := map[compKey]string{}
	for _, c := range comps {
		byKey[compKey{c.Name, c.Date}] = c.ID
	}

	var batch []Result
	for i, row := range t.Rows {
		name := members.CleanName(t.Cell(row, m.Name))
		if name == "" {
			continue
		}
		memberID, known := nameIdx[name]
		if !known {
			sum.SkippedNames++
			continue
		}

		mark := markCleaner.Replace(strings.TrimSpace(t.Cell(row, m.Result)))
		if mark == "" {
			continue
		}

		wind := strings.TrimSpace(t.Cell(row, m.Wind))
		if wind == "" {
			if g := windRe.FindStringSubmatch(mark); g != nil {
				wind = strings.TrimSpace(g[1])
				mark = strings.TrimSpace(windRe.ReplaceAllString(mark, ""))
			}
		}

		date := tabular.ISODate(t.Cell(row, m.Date))
		compName := strings.TrimSpace(t.Cell(row, m.CompName))
		if compName == "" {
			compName = UnknownCompName
		}
		if date == "" {
			date = UnknownCompDate
		}
		key := compKey{compName, date}
		compID, ok := byKey[key]
		if !ok {
			c := &competitions.Competition{
				Name:   compName,
				Date:   date,
				Status: competitions.StatusFinished,
			}
			if err := res.comps.Create(c); err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			compID = c.ID
			byKey[key] = compID
			sum.NewComps++
		}

		batch = append(batch, Result{
			ID:       uuid.NewString(),
			CompID:   compID,
			MemberID: memberID,
			Event:    strings.TrimSpace(t.Cell(row, m.Event)),
			Division: strings.TrimSpace(t.Cell(row, m.Division)),
			Round:    strings.TrimSpace(t.Cell(row, m.Round)),
			Heat:     tabular.IntString(t.Cell(row, m.Heat)),
			Lane:     tabular.IntString(t.Cell(row, m.Lane)),
			Result:   mark,
			Wind:     wind,
			Rank:     tabular.IntString(t.Cell(row, m.Rank)),
			Comment:  strings.TrimSpace(t.Cell(row, m.Comment)),
		})
	}

	saved, err := res.SaveBatch(batch)
	sum.Saved = saved
	return sum, err
}
