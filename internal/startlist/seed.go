package startlist

import (
	"github.com/inazy-arch/tf-fast-app/internal/entries"
	"github.com/inazy-arch/tf-fast-app/internal/members"
)

// SeedFromEntries drafts a start list skeleton from a competition's
// entries: one row per entered event with the profile PB and declared
// target filled in, for the managers to complete once heats and lanes
// are published.
func SeedFromEntries(ent *entries.Repo, mems *members.Repo, compID, affiliation string) ([]Row, error) {
	list, err := ent.ListByComp(compID)
	if err != nil {
		return nil, err
	}

	rows := []Row{}
	for _, e := range list {
		m, err := mems.Get(e.MemberID)
		if err != nil {
			return nil, err
		}
		times := e.Times.Data()
		pbs := m.PBs.Data()
		for _, ev := range e.Events {
			rows = append(rows, Row{
				CompID:      compID,
				Event:       ev,
				Name:        m.Name,
				CurrentPB:   pbs[ev],
				TargetTime:  times[ev],
				Affiliation: affiliation,
			})
		}
	}
	return rows, nil
}
