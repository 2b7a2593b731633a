package results

import (
	"github.com/inazy-arch/tf-fast-app/internal/records"
)

// Best is one line of a member's personal-best summary.
type Best struct {
	Event    string `json:"event"`
	Mark     string `json:"mark"`
	CompName string `json:"comp_name,omitempty"`
	Date     string `json:"date,omitempty"`
	// Source is "profile" when the pre-enrollment mark from the member
	// profile beats everything recorded here, "club" otherwise.
	Source string `json:"source"`
}

// MemberBests builds the PB table for a member: one row per specialty
// event, taking the better of the profile mark and the best club result.
// Events with results but no profile entry are included too.
func (r *Repo) MemberBests(memberID string) ([]Best, error) {
	m, err := r.members.Get(memberID)
	if err != nil {
		return nil, err
	}
	views, err := r.ListViews("")
	if err != nil {
		return nil, err
	}

	byEvent := map[string][]View{}
	for _, v := range views {
		if v.MemberID == memberID {
			byEvent[v.Event] = append(byEvent[v.Event], v)
		}
	}

	pbs := m.PBs.Data()
	var events []string
	seen := map[string]bool{}
	for _, ev := range m.Events {
		if ev != "" && !seen[ev] {
			events = append(events, ev)
			seen[ev] = true
		}
	}
	for ev := range byEvent {
		if !seen[ev] {
			events = append(events, ev)
			seen[ev] = true
		}
	}

	var out []Best
	for _, ev := range events {
		profile := pbs[ev]
		clubBest, hasClub := records.FindBest(byEvent[ev], ev, func(v View) string { return v.Result.Result })

		switch {
		case !hasClub && profile == "":
			out = append(out, Best{Event: ev, Mark: "-", Source: "profile"})
		case !hasClub:
			out = append(out, Best{Event: ev, Mark: profile, Source: "profile"})
		case profile == "" || records.Better(profile, clubBest.Result.Result, ev) == clubBest.Result.Result:
			out = append(out, Best{
				Event:    ev,
				Mark:     clubBest.Result.Result,
				CompName: clubBest.CompName,
				Date:     clubBest.Date,
				Source:   "club",
			})
		default:
			out = append(out, Best{Event: ev, Mark: profile, Source: "profile"})
		}
	}
	return out, nil
}
