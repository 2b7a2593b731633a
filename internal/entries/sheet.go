package entries

import (
	"bytes"
	"encoding/csv"

	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/records"
	"github.com/inazy-arch/tf-fast-app/internal/results"
)

// SelfReported marks a best that came from the member's profile rather
// than a recorded result.
const SelfReported = "自己申告"

// SheetRow is one event of one member's entry, flattened for the entry
// management sheet the meet managers submit to organizers.
type SheetRow struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Grade    string `json:"grade"`
	Event    string `json:"event"`
	// Declared is the mark the member typed on the entry form.
	Declared string `json:"declared"`
	// Best is the qualifying mark: the best result inside the
	// competition's validity window when one exists, otherwise the better
	// of the profile mark and the all-time recorded best.
	Best     string `json:"best"`
	BestComp string `json:"best_comp"`
	BestDate string `json:"best_date"`
	Comment  string `json:"comment"`
}

// BuildSheet expands a competition's entries into per-event rows with
// qualifying bests filled in.
func BuildSheet(repo *Repo, res *results.Repo, mems *members.Repo, comp *competitions.Competition) ([]SheetRow, error) {
	list, err := repo.ListByComp(comp.ID)
	if err != nil {
		return nil, err
	}

	rows := []SheetRow{}
	for _, e := range list {
		m, err := mems.Get(e.MemberID)
		if err != nil {
			return nil, err
		}
		times := e.Times.Data()
		for _, ev := range e.Events {
			row := SheetRow{
				MemberID: m.ID,
				Name:     m.Name,
				Grade:    members.Grade(m.GradYear, m.UnivCat),
				Event:    ev,
				Declared: times[ev],
				Comment:  e.Comment,
			}
			if err := fillBest(&row, res, m, ev, comp); err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func fillBest(row *SheetRow, res *results.Repo, m *members.Member, event string, comp *competitions.Competition) error {
	if comp.ValidStart != "" || comp.ValidEnd != "" {
		windowed, err := res.BestInPeriod(m.ID, event, comp.ValidStart, comp.ValidEnd)
		if err != nil {
			return err
		}
		if windowed != nil {
			row.Best = windowed.Result.Result
			row.BestComp = windowed.CompName
			row.BestDate = windowed.Date
			return nil
		}
	}

	allTime, err := res.BestInPeriod(m.ID, event, "", "")
	if err != nil {
		return err
	}
	profile := m.PBs.Data()[event]

	switch {
	case allTime == nil && profile == "":
		row.Best = "-"
	case allTime == nil:
		row.Best = profile
		row.BestComp = SelfReported
	case profile != "" && records.Better(profile, allTime.Result.Result, event) == profile:
		row.Best = profile
		row.BestComp = SelfReported
	default:
		row.Best = allTime.Result.Result
		row.BestComp = allTime.CompName
		row.BestDate = allTime.Date
	}
	return nil
}

// SheetCSV renders the entry sheet as CSV for download.
func SheetCSV(rows []SheetRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"会員ID", "氏名", "学年", "種目", "申告記録", "資格記録", "出した大会", "日付", "備考"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.MemberID, r.Name, r.Grade, r.Event, r.Declared, r.Best, r.BestComp, r.BestDate, r.Comment}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
