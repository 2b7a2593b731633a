package results

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/records"
)

type Repo struct {
	db      *gorm.DB
	comps   *competitions.Repo
	members *members.Repo
}

func NewRepo(db *gorm.DB, comps *competitions.Repo, mem *members.Repo) *Repo {
	return &Repo{db: db, comps: comps, members: mem}
}

// SaveBatch appends result rows, skipping ones missing a competition id or
// a result string. Duplicates are not detected.
func (r *Repo) SaveBatch(list []Result) (int, error) {
	saved := 0
	for i := range list {
		if list[i].CompID == "" || list[i].Result == "" {
			continue
		}
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
		}
		if err := r.db.Create(&list[i]).Error; err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// ListViews loads result rows (optionally for one competition) and joins
// competition name/date and member name in. Dangling references get
// placeholder strings; the join never fails.
func (r *Repo) ListViews(compID string) ([]View, error) {
	q := r.db.Order("id")
	if compID != "" {
		q = q.Where("comp_id = ?", compID)
	}
	var raw []Result
	if err := q.Find(&raw).Error; err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []View{}, nil
	}

	compMap, err := r.comps.IDMap()
	if err != nil {
		return nil, err
	}
	memberList, err := r.members.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(memberList))
	for _, m := range memberList {
		names[m.ID] = m.Name
	}

	out := make([]View, 0, len(raw))
	for _, row := range raw {
		v := View{
			Result:     row,
			CompName:   UnknownCompName,
			Date:       UnknownCompDate,
			MemberName: UnknownMemberName,
		}
		if c, ok := compMap[row.CompID]; ok {
			v.CompName = c.Name
			v.Date = c.Date
		}
		if n, ok := names[row.MemberID]; ok {
			v.MemberName = n
		}
		out = append(out, v)
	}
	return out, nil
}

// BestInPeriod returns the member's best mark for the event among results
// whose (joined) competition date falls inside the inclusive [start, end]
// window. Empty bounds leave that side open. Dates are zero-padded ISO
// strings, so plain string comparison is the date comparison.
func (r *Repo) BestInPeriod(memberID, event, start, end string) (*View, error) {
	views, err := r.ListViews("")
	if err != nil {
		return nil, err
	}
	var candidates []View
	for _, v := range views {
		if v.MemberID != memberID || v.Event != event {
			continue
		}
		if v.Date == "" {
			continue
		}
		if start != "" && v.Date < start {
			continue
		}
		if end != "" && v.Date > end {
			continue
		}
		candidates = append(candidates, v)
	}
	best, ok := records.FindBest(candidates, event, func(v View) string { return v.Result.Result })
	if !ok {
		return nil, nil
	}
	return &best, nil
}

// Ranking returns the top n parseable marks for the event, best first.
// Interleaved unparseable rows are dropped.
func (r *Repo) Ranking(event string, n int) ([]View, error) {
	views, err := r.ListViews("")
	if err != nil {
		return nil, err
	}
	type scored struct {
		v   View
		val float64
	}
	var rows []scored
	for _, v := range views {
		if v.Event != event {
			continue
		}
		if val, ok := records.Parse(v.Result.Result); ok {
			rows = append(rows, scored{v, val})
		}
	}
	track := records.IsTrackEvent(event)
	sort.SliceStable(rows, func(i, j int) bool {
		if track {
			return rows[i].val < rows[j].val
		}
		return rows[i].val > rows[j].val
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	out := make([]View, 0, len(rows))
	for _, s := range rows {
		out = append(out, s.v)
	}
	return out, nil
}

// ReportedKeys returns the (comp_id, event) pairs the member already has a
// result row for.
func (r *Repo) ReportedKeys(memberID string) (map[[2]string]bool, error) {
	var raw []Result
	if err := r.db.Where("member_id = ?", memberID).Find(&raw).Error; err != nil {
		return nil, err
	}
	keys := make(map[[2]string]bool, len(raw))
	for _, row := range raw {
		keys[[2]string{row.CompID, row.Event}] = true
	}
	return keys, nil
}
