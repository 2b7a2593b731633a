package results

// Result is one performance row. Competition name/date and the athlete's
// display name are deliberately not stored here; they are joined in at read
// time (the one normalized corner of the data model). Rows have no
// uniqueness constraint: the same mark can be reported twice and both rows
// are kept.
type Result struct {
	ID       string `gorm:"primaryKey" json:"id"`
	CompID   string `json:"comp_id"`
	MemberID string `json:"member_id"`
	Event    string `json:"event"`
	Division string `json:"division"`
	Round    string `json:"round"`
	Heat     string `json:"heat"`
	Lane     string `json:"lane"`
	Result   string `json:"result"`
	Wind     string `json:"wind"`
	Rank     string `json:"rank"`
	Comment  string `json:"comment"`
}

// Join placeholders: a dangling foreign key degrades to these instead of
// failing the read.
const (
	UnknownCompName   = "未登録大会"
	UnknownCompDate   = "2000-01-01"
	UnknownMemberName = "未登録選手"
)

// View is a Result with the display fields joined in.
type View struct {
	Result
	CompName   string `json:"comp_name"`
	Date       string `json:"date"`
	MemberName string `json:"member_name"`
}
