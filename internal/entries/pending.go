package entries

import (
	"sort"

	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/results"
)

// PendingReport is an entered event of a finished competition the member
// has not reported a result for yet.
type PendingReport struct {
	CompID   string `json:"comp_id"`
	CompName string `json:"comp_name"`
	Date     string `json:"date"`
	Event    string `json:"event"`
}

// Pending lists the member's unreported events across finished
// competitions, newest competition first.
func Pending(repo *Repo, res *results.Repo, comps *competitions.Repo, memberID string) ([]PendingReport, error) {
	entries, err := repo.ListByMember(memberID)
	if err != nil {
		return nil, err
	}
	reported, err := res.ReportedKeys(memberID)
	if err != nil {
		return nil, err
	}
	compMap, err := comps.IDMap()
	if err != nil {
		return nil, err
	}

	out := []PendingReport{}
	for _, e := range entries {
		comp, ok := compMap[e.CompID]
		if !ok || comp.Status != competitions.StatusFinished {
			continue
		}
		for _, ev := range e.Events {
			if reported[[2]string{e.CompID, ev}] {
				continue
			}
			out = append(out, PendingReport{
				CompID:   e.CompID,
				CompName: comp.Name,
				Date:     comp.Date,
				Event:    ev,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
