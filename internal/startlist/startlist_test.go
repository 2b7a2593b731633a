package startlist

import (
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inazy-arch/tf-fast-app/internal/entries"
	"github.com/inazy-arch/tf-fast-app/internal/members"
)

func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Row{}, &entries.Entry{}, &members.Member{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestReplaceOnlyTouchesOneCompetition(t *testing.T) {
	repo := NewRepo(testDB(t))
	if err := repo.Replace("c1", []Row{
		{Event: "100m", Heat: "1", Lane: "3", Name: "走田 速人"},
		{Event: "100m", Heat: "1", Lane: "4", Name: "跳間 高志"},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.Replace("c2", []Row{
		{Event: "200m", Heat: "2", Lane: "5", Name: "走田 速人"},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := repo.Replace("c1", []Row{
		{Event: "100m", Heat: "2", Lane: "1", Name: "走田 速人"},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	c1, err := repo.ListByComp("c1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertEq(t, len(c1), 1)
	assertEq(t, c1[0].Heat, "2")

	c2, err := repo.ListByComp("c2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertEq(t, len(c2), 1)
	assertEq(t, c2[0].Event, "200m")
}

func TestForNameNormalizesSpacing(t *testing.T) {
	repo := NewRepo(testDB(t))
	if err := repo.Replace("c1", []Row{
		{Event: "100m", Name: "走田　速人"},
		{Event: "100m", Name: "跳間 高志"},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	rows, err := repo.ForName("c1", "走田 速人")
	if err != nil {
		t.Fatalf("for name: %v", err)
	}
	assertEq(t, len(rows), 1)
}

func TestSeedFromEntries(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ent := entries.NewRepo(db)
	mems := members.NewRepo(db)

	if err := mems.Save(&members.Member{
		ID: "uec001", Name: "走田 速人", Status: members.StatusActive,
		PBs: datatypes.NewJSONType(map[string]string{"100m": "10.80"}),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	e := entries.Entry{
		CompID:   "c1",
		MemberID: "uec001",
		Events:   datatypes.NewJSONSlice([]string{"100m", "200m"}),
		Times:    datatypes.NewJSONType(map[string]string{"100m": "11.20"}),
	}
	if err := ent.Save(&e); err != nil {
		t.Fatalf("save entry: %v", err)
	}

	rows, err := SeedFromEntries(ent, mems, "c1", "電通大")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	assertEq(t, len(rows), 2)
	if err := repo.Replace("c1", rows); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.ListByComp("c1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertEq(t, len(got), 2)
	assertEq(t, got[0].Affiliation, "電通大")
	byEvent := map[string]Row{}
	for _, row := range got {
		byEvent[row.Event] = row
	}
	assertEq(t, byEvent["100m"].CurrentPB, "10.80")
	assertEq(t, byEvent["100m"].TargetTime, "11.20")
	assertEq(t, byEvent["200m"].TargetTime, "")
}
