package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args, failing the test on error.
func execute(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func surveyCSV(t *testing.T) string {
	t.Helper()
	rows := []string{
		"Age,Music Lis Frequency,Music Time Slot,Music Recc Rating,Spotify Usage Period,Pod Lis Frequency,Fav Music Genre",
		"6-12,Workout,Morning,5,Less than 6 months,Never,old songs",
		"20-35,\"Workout,Study\",Night,3,More than 2 years,Daily,kpop",
		"35-60,Commute,Afternoon,1,1 year to 2 years,Rarely,jazz",
		"60+,\"Workout,Study,Commute,Sleep\",Night,2,6 months to 1 year,Once a week,all",
	}
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestRunCommandWritesReport(t *testing.T) {
	csvPath := surveyCSV(t)
	outPath := filepath.Join(t.TempDir(), "report.md")

	execute(t, "run", csvPath, "--output", outPath, "--seed", "42")

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{
		"[ENGINEERED DATASET]",
		"File: survey.csv",
		"Rows: 4",
		"[DESCRIPTIVE STATS]",
		"| streams |",
		"| bot_like |",
		"[GROUP SUMMARY]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}

func TestRunCommandCorrelationsFlag(t *testing.T) {
	csvPath := surveyCSV(t)
	dir := t.TempDir()
	outOff := filepath.Join(dir, "off.md")
	outOn := filepath.Join(dir, "on.md")

	execute(t, "run", csvPath, "--output", outOff, "--correlations=false")
	execute(t, "run", csvPath, "--output", outOn, "--correlations=true")

	off, err := os.ReadFile(outOff)
	if err != nil {
		t.Fatalf("read off: %v", err)
	}
	if strings.Contains(string(off), "[CORRELATIONS]") {
		t.Fatalf("correlations present with --correlations=false:\n%s", off)
	}
	on, err := os.ReadFile(outOn)
	if err != nil {
		t.Fatalf("read on: %v", err)
	}
	if !strings.Contains(string(on), "[CORRELATIONS]") {
		t.Fatalf("correlations missing with --correlations=true:\n%s", on)
	}
}

func TestRunCommandReproducible(t *testing.T) {
	csvPath := surveyCSV(t)
	dir := t.TempDir()
	outA := filepath.Join(dir, "a.md")
	outB := filepath.Join(dir, "b.md")

	execute(t, "run", csvPath, "--output", outA, "--seed", "7")
	execute(t, "run", csvPath, "--output", outB, "--seed", "7")

	a, err := os.ReadFile(outA)
	if err != nil {
		t.Fatalf("read a: %v", err)
	}
	b, err := os.ReadFile(outB)
	if err != nil {
		t.Fatalf("read b: %v", err)
	}
	// reports differ only in the run id line
	if stripRunLine(string(a)) != stripRunLine(string(b)) {
		t.Fatalf("reports differ across identical runs:\n%s\n---\n%s", a, b)
	}
}

func stripRunLine(md string) string {
	lines := strings.Split(md, "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(l, "Run: ") {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

func TestStatsCommand(t *testing.T) {
	csvPath := surveyCSV(t)
	outPath := filepath.Join(t.TempDir(), "stats.md")

	execute(t, "stats", csvPath, "--output", outPath)

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read stats: %v", err)
	}
	md := string(b)
	if !strings.Contains(md, "[DESCRIPTIVE STATS]") {
		t.Fatalf("stats output missing describe section:\n%s", md)
	}
	if !strings.Contains(md, "| music_recc_rating |") {
		t.Fatalf("stats output missing normalized rating column:\n%s", md)
	}
	if strings.Contains(md, "| streams |") {
		t.Fatalf("stats must not engineer features:\n%s", md)
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"", 0, true},
		{",", ',', true},
		{"comma", ',', true},
		{";", ';', true},
		{"tab", '\t', true},
		{"|", 0, false},
	}
	for _, tt := range tests {
		got, err := parseDelimiter(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseDelimiter(%q) = %v, %v; want %v, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}
