package records

import "testing"

func TestParse_Sentinels(t *testing.T) {
	for _, s := range []string{"DNS", "dns", "DNF", "DQ", "NM", "UK", "", "-", " dq "} {
		if _, ok := Parse(s); ok {
			t.Errorf("Parse(%q) should have no value", s)
		}
	}
}

func TestParse_Values(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10.50", 10.50},
		{"1:02.30", 62.30},
		{"1:02:03", 3723.0},
		{"11.50 (+1.2)", 11.50},
		{"11.50（追風参考）", 11.50},
		{"10’13″77", 613.77},
		{"4m05", 4.05},
		{"2'05\"3", 125.3},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if !ok {
			t.Errorf("Parse(%q) had no value, want %v", c.in, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParse_Garbage(t *testing.T) {
	// Full-width digits are not folded, so "１0.5０" is unparseable too.
	for _, s := range []string{"abc", "1:2:3:4", "12..5x", "欠場", "１0.5０"} {
		if v, ok := Parse(s); ok {
			t.Errorf("Parse(%q) = %v, expected no value", s, v)
		}
	}
}

func TestIsTrackEvent(t *testing.T) {
	track := []string{"100m", "400mH", "3000mSC", "ハーフマラソン", "4x100mR"}
	field := []string{"走幅跳", "三段跳", "やり投", "砲丸投", "十種競技", "混成得点"}
	for _, ev := range track {
		if !IsTrackEvent(ev) {
			t.Errorf("%s should be a track event", ev)
		}
	}
	for _, ev := range field {
		if IsTrackEvent(ev) {
			t.Errorf("%s should be a field event", ev)
		}
	}
}

func TestBetter_TrackAndField(t *testing.T) {
	assertEq(t, Better("10.50", "10.80", "100m"), "10.50")
	assertEq(t, Better("10.80", "10.50", "100m"), "10.50")
	assertEq(t, Better("6m10", "5.95", "走幅跳"), "6m10")
	assertEq(t, Better("5.95", "6m10", "走幅跳"), "6m10")
}

func TestBetter_Unparseable(t *testing.T) {
	assertEq(t, Better("DNS", "11.20", "100m"), "11.20")
	assertEq(t, Better("11.20", "NM", "100m"), "11.20")
	assertEq(t, Better("DNS", "DNF", "100m"), "-")
}

func TestBetter_TieKeepsFirst(t *testing.T) {
	// Same value, different spellings: first argument wins.
	assertEq(t, Better("62.30", "1:02.30", "400m"), "62.30")
}

func TestFindBest(t *testing.T) {
	type row struct{ mark string }
	rows := []row{{"DNS"}, {"11.80"}, {"11.42"}, {"NM"}, {"11.42"}}
	best, ok := FindBest(rows, "100m", func(r row) string { return r.mark })
	if !ok {
		t.Fatal("expected a best mark")
	}
	assertEq(t, best.mark, "11.42")

	jumps := []row{{"5.80"}, {"6.12"}, {"-"}, {"5.95"}}
	best, ok = FindBest(jumps, "走幅跳", func(r row) string { return r.mark })
	if !ok {
		t.Fatal("expected a best mark")
	}
	assertEq(t, best.mark, "6.12")
}

func TestFindBest_NoData(t *testing.T) {
	type row struct{ mark string }
	if _, ok := FindBest([]row{{"DNS"}, {"-"}}, "100m", func(r row) string { return r.mark }); ok {
		t.Fatal("expected no best mark")
	}
}

func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}
