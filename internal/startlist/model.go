package startlist

// Row is one line of a competition's start list. Rows are keyed to the
// competition and replaced wholesale on upload, so they carry no stable
// identity of their own.
type Row struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	CompID      string `gorm:"index" json:"comp_id"`
	SessionTime string `json:"session_time"`
	Event       string `json:"event"`
	Heat        string `json:"heat"`
	Lane        string `json:"lane"`
	Number      string `json:"number"`
	Name        string `json:"name"`
	CurrentPB   string `json:"current_pb"`
	TargetTime  string `json:"target_time"`
	Affiliation string `json:"affiliation"`
	CallStart   string `json:"call_start"`
	CallEnd     string `json:"call_end"`
	Note        string `json:"note"`
}
