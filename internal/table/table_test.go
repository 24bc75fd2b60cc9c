package table

import "testing"

func mustFromRecords(t *testing.T, header []string, records [][]string) *Table {
	t.Helper()
	tbl, err := FromRecords(header, records)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return tbl
}

func TestFromRecordsTyping(t *testing.T) {
	tbl := mustFromRecords(t,
		[]string{"age", "rating", "note"},
		[][]string{
			{"6-12", "4", "likes pop"},
			{"60+", "", ""},
			{"20-35"}, // short row padded
		},
	)
	if tbl.Len() != 3 {
		t.Fatalf("len = %d", tbl.Len())
	}
	if c := tbl.Cell(0, "age"); c.Kind != String || c.Str != "6-12" {
		t.Fatalf("age cell = %+v", c)
	}
	if v, ok := tbl.Float(0, "rating"); !ok || v != 4 {
		t.Fatalf("rating = %v, %v", v, ok)
	}
	if s, ok := tbl.StringAt(0, "rating"); !ok || s != "4" {
		t.Fatalf("rating raw text = %q, %v", s, ok)
	}
	if c := tbl.Cell(1, "rating"); c.Kind != Missing {
		t.Fatalf("empty cell should be missing, got %+v", c)
	}
	if c := tbl.Cell(2, "note"); c.Kind != Missing {
		t.Fatalf("padded cell should be missing, got %+v", c)
	}
}

func TestFromRecordsDuplicateColumn(t *testing.T) {
	if _, err := FromRecords([]string{"a", "a"}, nil); err == nil {
		t.Fatal("expected duplicate column error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tbl := mustFromRecords(t, []string{"x"}, [][]string{{"1"}})
	cp := tbl.Clone()
	if err := cp.SetCell(0, "x", Str("changed")); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if v, ok := tbl.Float(0, "x"); !ok || v != 1 {
		t.Fatalf("original mutated through clone: %v, %v", v, ok)
	}
	if err := cp.AddColumn("y", []Cell{Num(2)}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if tbl.HasColumn("y") {
		t.Fatal("original gained a column added to the clone")
	}
}

func TestAddColumnLengthMismatch(t *testing.T) {
	tbl := mustFromRecords(t, []string{"x"}, [][]string{{"1"}, {"2"}})
	if err := tbl.AddColumn("y", []Cell{Num(1)}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if err := tbl.AddColumn("x", []Cell{Num(1), Num(2)}); err == nil {
		t.Fatal("expected duplicate column error")
	}
}

func TestRenameColumns(t *testing.T) {
	tbl := mustFromRecords(t, []string{"Age", "Fav Genre"}, [][]string{{"6-12", "pop"}})
	err := tbl.RenameColumns(func(s string) string {
		if s == "Age" {
			return "age"
		}
		return "fav_genre"
	})
	if err != nil {
		t.Fatalf("RenameColumns: %v", err)
	}
	if !tbl.HasColumn("age") || !tbl.HasColumn("fav_genre") {
		t.Fatalf("columns = %v", tbl.Columns())
	}
	if s, _ := tbl.StringAt(0, "fav_genre"); s != "pop" {
		t.Fatalf("cell lost on rename: %q", s)
	}

	err = tbl.RenameColumns(func(string) string { return "same" })
	if err == nil {
		t.Fatal("expected collision error")
	}
}

func TestDummies(t *testing.T) {
	tbl := mustFromRecords(t,
		[]string{"plan", "score"},
		[][]string{
			{"Free", "1"},
			{"Premium", "2"},
			{"Student", "3"},
			{"Free", "4"},
			{"", "5"}, // missing encodes all-zero
		},
	)
	out, err := Dummies(tbl, []string{"plan"})
	if err != nil {
		t.Fatalf("Dummies: %v", err)
	}
	// first category (Free) dropped
	want := []string{"plan_Premium", "plan_Student", "score"}
	got := out.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for _, c := range want {
		if !out.HasColumn(c) {
			t.Fatalf("missing column %q in %v", c, got)
		}
	}
	if out.HasColumn("plan") {
		t.Fatal("source column should be dropped")
	}
	checks := []struct {
		row  int
		col  string
		want float64
	}{
		{0, "plan_Premium", 0}, {0, "plan_Student", 0},
		{1, "plan_Premium", 1}, {1, "plan_Student", 0},
		{2, "plan_Premium", 0}, {2, "plan_Student", 1},
		{3, "plan_Premium", 0}, {3, "plan_Student", 0},
		{4, "plan_Premium", 0}, {4, "plan_Student", 0},
	}
	for _, c := range checks {
		if v, ok := out.Float(c.row, c.col); !ok || v != c.want {
			t.Errorf("row %d %s = %v, %v; want %v", c.row, c.col, v, ok, c.want)
		}
	}
	// untouched column carried over
	if v, _ := out.Float(4, "score"); v != 5 {
		t.Fatalf("score lost: %v", v)
	}

	if _, err := Dummies(tbl, []string{"nope"}); err == nil {
		t.Fatal("expected unknown column error")
	}
}
