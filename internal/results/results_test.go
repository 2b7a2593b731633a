package results

import (
	"strings"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/tabular"
)

func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func testRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Result{}, &competitions.Competition{}, &members.Member{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(db, competitions.NewRepo(db), members.NewRepo(db))
}

func seedMember(t *testing.T, r *Repo, id, name string) {
	t.Helper()
	if err := r.members.Save(&members.Member{ID: id, Name: name, Status: members.StatusActive}); err != nil {
		t.Fatalf("seed member: %v", err)
	}
}

func seedComp(t *testing.T, r *Repo, c *competitions.Competition) {
	t.Helper()
	if err := r.comps.Create(c); err != nil {
		t.Fatalf("seed comp: %v", err)
	}
}

func TestListViewsDegradesToPlaceholders(t *testing.T) {
	r := testRepo(t)
	_, err := r.SaveBatch([]Result{
		{CompID: "nope", MemberID: "uec999", Event: "100m", Result: "11.23"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	views, err := r.ListViews("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertEq(t, len(views), 1)
	assertEq(t, views[0].CompName, UnknownCompName)
	assertEq(t, views[0].Date, UnknownCompDate)
	assertEq(t, views[0].MemberName, UnknownMemberName)
}

func TestSaveBatchSkipsIncompleteRows(t *testing.T) {
	r := testRepo(t)
	saved, err := r.SaveBatch([]Result{
		{CompID: "c1", MemberID: "m1", Event: "100m", Result: "11.00"},
		{CompID: "", MemberID: "m1", Event: "100m", Result: "11.00"},
		{CompID: "c1", MemberID: "m1", Event: "100m", Result: ""},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	assertEq(t, saved, 1)
}

func TestBestInPeriodWindowIsInclusive(t *testing.T) {
	r := testRepo(t)
	seedMember(t, r, "uec001", "走田 速人")
	for _, c := range []struct{ id, date string }{
		{"early", "2025-03-01"},
		{"mid", "2025-05-01"},
		{"last", "2025-06-01"},
	} {
		seedComp(t, r, &competitions.Competition{ID: c.id, Name: c.id, Date: c.date})
	}
	_, err := r.SaveBatch([]Result{
		{CompID: "early", MemberID: "uec001", Event: "100m", Result: "10.90"},
		{CompID: "mid", MemberID: "uec001", Event: "100m", Result: "11.20"},
		{CompID: "last", MemberID: "uec001", Event: "100m", Result: "11.05"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	best, err := r.BestInPeriod("uec001", "100m", "2025-04-01", "2025-06-01")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best inside the window")
	}
	// 10.90 is faster but falls before the window start; 2025-06-01 is
	// still inside because the end bound is inclusive.
	assertEq(t, best.Result.Result, "11.05")

	none, err := r.BestInPeriod("uec001", "100m", "2025-07-01", "")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no result after the window, got %v", none.Result)
	}
}

func TestRankingOrdersTrackAndField(t *testing.T) {
	r := testRepo(t)
	seedMember(t, r, "uec001", "走田 速人")
	seedMember(t, r, "uec002", "跳間 高志")
	seedComp(t, r, &competitions.Competition{ID: "c1", Name: "記録会", Date: "2025-05-01"})
	_, err := r.SaveBatch([]Result{
		{CompID: "c1", MemberID: "uec001", Event: "100m", Result: "11.20"},
		{CompID: "c1", MemberID: "uec002", Event: "100m", Result: "10.95"},
		{CompID: "c1", MemberID: "uec001", Event: "100m", Result: "DNS"},
		{CompID: "c1", MemberID: "uec001", Event: "走高跳", Result: "1m80"},
		{CompID: "c1", MemberID: "uec002", Event: "走高跳", Result: "1m95"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	track, err := r.Ranking("100m", 10)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	assertEq(t, len(track), 2)
	assertEq(t, track[0].Result.Result, "10.95")

	field, err := r.Ranking("走高跳", 10)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	assertEq(t, field[0].Result.Result, "1m95")
}

func TestMemberBestsPrefersBetterSource(t *testing.T) {
	r := testRepo(t)
	m := &members.Member{
		ID:     "uec001",
		Name:   "走田 速人",
		Status: members.StatusActive,
		Events: datatypes.NewJSONSlice([]string{"100m", "200m"}),
		PBs:    datatypes.NewJSONType(map[string]string{"100m": "10.80", "200m": "22.50"}),
	}
	if err := r.members.Save(m); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seedComp(t, r, &competitions.Competition{ID: "c1", Name: "記録会", Date: "2025-05-01"})
	_, err := r.SaveBatch([]Result{
		{CompID: "c1", MemberID: "uec001", Event: "100m", Result: "11.10"},
		{CompID: "c1", MemberID: "uec001", Event: "200m", Result: "22.30"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	bests, err := r.MemberBests("uec001")
	if err != nil {
		t.Fatalf("bests: %v", err)
	}
	got := map[string]Best{}
	for _, b := range bests {
		got[b.Event] = b
	}
	assertEq(t, got["100m"].Mark, "10.80")
	assertEq(t, got["100m"].Source, "profile")
	assertEq(t, got["200m"].Mark, "22.30")
	assertEq(t, got["200m"].Source, "club")
}

func TestBuildReportFormat(t *testing.T) {
	r := testRepo(t)
	seedMember(t, r, "uec001", "走田 速人")
	seedMember(t, r, "uec002", "跳間 高志")
	seedComp(t, r, &competitions.Competition{
		ID: "c1", Name: "春季記録会", Date: "2025-05-03", Location: "調布競技場",
	})
	_, err := r.SaveBatch([]Result{
		{CompID: "c1", MemberID: "uec002", Event: "100m", Result: "10.95", Heat: "2", Lane: "4"},
		{CompID: "c1", MemberID: "uec001", Event: "100m", Result: "11.20", Heat: "1", Lane: "3", Comment: "PB"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := r.BuildReport("c1", "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	// 2025-05-03 is a Saturday.
	if !strings.Contains(text, "5月3日（土）に調布競技場にて行われた、春季記録会の結果をお知らせいたします。") {
		t.Fatalf("missing intro in:\n%s", text)
	}
	if !strings.Contains(text, "▼100m") {
		t.Fatalf("missing event header in:\n%s", text)
	}
	i1 := strings.Index(text, "1-3 走田 速人 11.20 PB")
	i2 := strings.Index(text, "2-4 跳間 高志 10.95")
	if i1 < 0 || i2 < 0 || i1 > i2 {
		t.Fatalf("rows missing or out of heat order in:\n%s", text)
	}
	if !strings.HasSuffix(text, "結果は以上です。お疲れ様でした。") {
		t.Fatalf("missing footer in:\n%s", text)
	}

	mail, err := r.BuildReport("c1", "広井 報子")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.HasPrefix(mail, "こんばんは\n広報の広井 報子です。\n") {
		t.Fatalf("missing greeting in:\n%s", mail)
	}
}

func TestImportExtractsWindAndCreatesCompetition(t *testing.T) {
	r := testRepo(t)
	seedMember(t, r, "uec001", "走田 速人")

	csv := strings.Join([]string{
		"日付,大会名,氏名,種目,組,レーン,記録,順位",
		"2025/5/3,春季記録会,走田 速人,100m,1.0,3.0,11.20(+1.5),2.0",
		"2025/5/3,春季記録会,知らない 人,100m,1,4,11.30,3",
	}, "\n")
	table, err := tabular.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	sum, err := Import(r, table, ImportMapping{
		Date: "日付", CompName: "大会名", Name: "氏名", Event: "種目",
		Heat: "組", Lane: "レーン", Result: "記録", Rank: "順位",
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	assertEq(t, sum.Saved, 1)
	assertEq(t, sum.SkippedNames, 1)
	assertEq(t, sum.NewComps, 1)

	views, err := r.ListViews("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertEq(t, len(views), 1)
	assertEq(t, views[0].Wind, "+1.5")
	assertEq(t, views[0].Result.Result, "11.20")
	assertEq(t, views[0].Heat, "1")
	assertEq(t, views[0].Rank, "2")
	assertEq(t, views[0].CompName, "春季記録会")
	assertEq(t, views[0].Date, "2025-05-03")

	comp, err := r.comps.Get(views[0].CompID)
	if err != nil {
		t.Fatalf("comp: %v", err)
	}
	assertEq(t, comp.Status, competitions.StatusFinished)
}
