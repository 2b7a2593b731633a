package fees

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/inazy-arch/tf-fast-app/internal/members"
)

// Target scopes for a new fee.
const (
	TargetActive   = "active"
	TargetAll      = "all"
	TargetSelected = "selected"
)

type Repo struct {
	db      *gorm.DB
	members *members.Repo
}

func NewRepo(db *gorm.DB, mems *members.Repo) *Repo {
	return &Repo{db: db, members: mems}
}

func (r *Repo) List() ([]Fee, error) {
	var out []Fee
	err := r.db.Order("deadline DESC, id").Find(&out).Error
	return out, err
}

func (r *Repo) Get(id string) (*Fee, error) {
	var f Fee
	if err := r.db.First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// Create levies a fee on a target set of members, all starting unpaid.
// target is "active" (current members), "all", or "selected" with
// explicit ids.
func (r *Repo) Create(f *Fee, target string, selected []string) error {
	statuses := map[string]string{}
	switch target {
	case TargetSelected:
		for _, id := range selected {
			statuses[id] = StatusUnpaid
		}
	case TargetActive, TargetAll:
		list, err := r.members.List()
		if err != nil {
			return err
		}
		for _, m := range list {
			if target == TargetActive && m.Status != members.StatusActive {
				continue
			}
			statuses[m.ID] = StatusUnpaid
		}
	default:
		return fmt.Errorf("unknown target %q", target)
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.Statuses = datatypes.NewJSONType(statuses)
	return r.db.Create(f).Error
}

// UpdateStatuses applies payment-state changes for members already on
// the fee. Unknown member ids are rejected rather than silently added.
func (r *Repo) UpdateStatuses(id string, changes map[string]string) (*Fee, error) {
	f, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	statuses := f.Statuses.Data()
	for memberID, status := range changes {
		if _, ok := statuses[memberID]; !ok {
			return nil, fmt.Errorf("member %s is not on this fee", memberID)
		}
		if status != StatusPaid && status != StatusUnpaid {
			return nil, fmt.Errorf("unknown status %q", status)
		}
		statuses[memberID] = status
	}
	f.Statuses = datatypes.NewJSONType(statuses)
	return f, r.db.Save(f).Error
}

type Progress struct {
	Paid      int `json:"paid"`
	Unpaid    int `json:"unpaid"`
	Collected int `json:"collected"`
	Expected  int `json:"expected"`
}

func (f *Fee) Progress() Progress {
	var p Progress
	for _, s := range f.Statuses.Data() {
		if s == StatusPaid {
			p.Paid++
		} else {
			p.Unpaid++
		}
	}
	p.Collected = p.Paid * f.Amount
	p.Expected = (p.Paid + p.Unpaid) * f.Amount
	return p
}

// MemberFee is one fee as seen from a member's own page.
type MemberFee struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   int    `json:"amount"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
}

// ForMember lists the fees levied on a member plus the unpaid total.
func (r *Repo) ForMember(memberID string) ([]MemberFee, int, error) {
	list, err := r.List()
	if err != nil {
		return nil, 0, err
	}
	out := []MemberFee{}
	total := 0
	for _, f := range list {
		status, ok := f.Statuses.Data()[memberID]
		if !ok {
			continue
		}
		out = append(out, MemberFee{
			ID: f.ID, Title: f.Title, Amount: f.Amount,
			Deadline: f.Deadline, Status: status,
		})
		if status != StatusPaid {
			total += f.Amount
		}
	}
	return out, total, nil
}
