package reformat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const sampleTranscript = `[
	{"role": "system", "content": "You are a helpful tutor."},
	{"role": "user", "content": "What is recursion?"},
	{"role": "assistant", "content": "Recursion is a function calling itself."},
	{"role": "user", "content": "Show me an example."},
	{"role": "assistant", "content": "Sure, here is one."}
]`

func TestParseConversation_JSON(t *testing.T) {
	turns, ok := ParseConversation([]byte(sampleTranscript), "abc", 2)
	if !ok {
		t.Fatal("expected transcript to parse")
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}

	first := turns[0]
	if first.CaseID != "abc" || first.Week != 2 {
		t.Errorf("case/week = %s/%d", first.CaseID, first.Week)
	}
	if first.User != "What is recursion?" {
		t.Errorf("User = %q", first.User)
	}
	if first.BotBefore != "You are a helpful tutor." {
		t.Errorf("BotBefore = %q (system message should count)", first.BotBefore)
	}
	if first.BotAfter != "Recursion is a function calling itself." {
		t.Errorf("BotAfter = %q", first.BotAfter)
	}

	second := turns[1]
	if second.BotBefore != "Recursion is a function calling itself." {
		t.Errorf("second BotBefore = %q", second.BotBefore)
	}
	if second.BotAfter != "Sure, here is one." {
		t.Errorf("second BotAfter = %q", second.BotAfter)
	}
}

func TestParseConversation_TrailingUserDropped(t *testing.T) {
	transcript := `[
		{"role": "user", "content": "first"},
		{"role": "assistant", "content": "reply"},
		{"role": "user", "content": "unanswered"}
	]`
	turns, ok := ParseConversation([]byte(transcript), "abc", 1)
	if !ok {
		t.Fatal("expected transcript to parse")
	}
	if len(turns) != 1 || turns[0].User != "first" {
		t.Errorf("turns = %v, want only the answered turn", turns)
	}
}

func TestParseConversation_Empty(t *testing.T) {
	for _, content := range []string{"", "  ", "[]"} {
		turns, ok := ParseConversation([]byte(content), "abc", 1)
		if !ok {
			t.Errorf("ParseConversation(%q) not ok, want ok with no turns", content)
		}
		if len(turns) != 0 {
			t.Errorf("ParseConversation(%q) = %v, want none", content, turns)
		}
	}
}

func TestParseConversation_LabeledFallback(t *testing.T) {
	content := "case_id xyz week 3 idx 0 timestamp 01.01.25 09:00 " +
		"chatgpt_before hello there user question here chatgpt_after the answer"

	turns, ok := ParseConversation([]byte(content), "abc", 3)
	if !ok {
		t.Fatal("expected labeled fallback to parse")
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].CaseID != "abc" || turns[0].Week != 3 {
		t.Errorf("case/week = %s/%d, want from filename, not content", turns[0].CaseID, turns[0].Week)
	}
	if turns[0].User != "question here" {
		t.Errorf("User = %q", turns[0].User)
	}
}

func TestParseConversation_Unparseable(t *testing.T) {
	if _, ok := ParseConversation([]byte("not json, not labeled"), "abc", 1); ok {
		t.Error("expected unparseable content to report not ok")
	}
}

func TestAdjustTimestamps(t *testing.T) {
	turns := []DialogTurn{
		{CaseID: "a", Week: 1, Index: 3},
		{CaseID: "a", Week: 1, Index: 1},
		{CaseID: "a", Week: 3, Index: 1},
		{CaseID: "b", Week: 1, Index: 1},
	}
	AdjustTimestamps(turns)

	// Week 1 of case a: earlier index first, 10 minute stride.
	if got := turns[1].Timestamp.Format(TimestampLayout); got != "01.01.25 09:00" {
		t.Errorf("first turn = %s, want 01.01.25 09:00", got)
	}
	if got := turns[0].Timestamp.Format(TimestampLayout); got != "01.01.25 09:10" {
		t.Errorf("second turn = %s, want 01.01.25 09:10", got)
	}

	// Week 3 starts 14 days after the base.
	if got := turns[2].Timestamp.Format(TimestampLayout); got != "15.01.25 09:00" {
		t.Errorf("week 3 turn = %s, want 15.01.25 09:00", got)
	}

	// Other cases restart the stride.
	if got := turns[3].Timestamp; !got.Equal(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("case b turn = %v", got)
	}
}

func TestCaseIDFromFilename(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"31de0a7aaa_task1.txt", "31de0a7aaa"},
		{"/data/task2/31de0a7aaa_task2.txt", "31de0a7aaa"},
		{"plain.txt", "plain"},
	}
	for _, tt := range tests {
		if got := caseIDFromFilename(tt.path); got != tt.expected {
			t.Errorf("caseIDFromFilename(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestHardWrap(t *testing.T) {
	short := "short text"
	if got := hardWrap(short); got != short {
		t.Errorf("hardWrap(short) = %q", got)
	}

	long := strings.Repeat("x", 250)
	wrapped := hardWrap(long)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 3 || len(lines[0]) != 100 || len(lines[2]) != 50 {
		t.Errorf("hardWrap produced lines of lengths %v", lineLengths(lines))
	}
	if strings.ReplaceAll(wrapped, "\n", "") != long {
		t.Error("hardWrap lost characters")
	}
}

func lineLengths(lines []string) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = len(l)
	}
	return out
}

func TestCollect(t *testing.T) {
	root := t.TempDir()

	task1 := filepath.Join(root, "task1")
	task2 := filepath.Join(root, "task2")
	for _, d := range []string{task1, task2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	write := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(task1, "aaa_task1.txt"), sampleTranscript)
	write(filepath.Join(task1, "bbb_task1.txt"), "[]") // empty, silently skipped
	write(filepath.Join(task2, "aaa_task2.txt"), `[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`)
	write(filepath.Join(task2, "ccc_task2.txt"), "garbage that matches nothing")

	res, err := Collect(root, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Turns) != 3 {
		t.Errorf("got %d turns, want 3", len(res.Turns))
	}
	if len(res.Skipped) != 1 || filepath.Base(res.Skipped[0]) != "ccc_task2.txt" {
		t.Errorf("Skipped = %v, want only the garbage file", res.Skipped)
	}

	// Week comes from the task directory.
	for _, turn := range res.Turns {
		if turn.CaseID == "aaa" && turn.User == "hi" && turn.Week != 2 {
			t.Errorf("task2 turn week = %d, want 2", turn.Week)
		}
	}
}

func TestCollect_NoTaskDirs(t *testing.T) {
	if _, err := Collect(t.TempDir(), false); err == nil {
		t.Error("expected an error for a root with no task directories")
	}
}

func TestWriteXLSX(t *testing.T) {
	turns := []DialogTurn{
		{CaseID: "zz", Week: 1, Index: 1, Timestamp: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), User: "later case"},
		{CaseID: "aa", Week: 2, Index: 1, Timestamp: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC), User: "first case"},
	}

	path := filepath.Join(t.TempDir(), DefaultOutputFile)
	if err := WriteXLSX(turns, path); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}

	if rows[0][0] != "case_id" || rows[0][6] != "chatgpt_after" {
		t.Errorf("header = %v", rows[0])
	}
	// Sorted by case id; idx renumbered from 1.
	if rows[1][0] != "aa" || rows[1][2] != "1" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][0] != "zz" || rows[2][2] != "2" {
		t.Errorf("second data row = %v", rows[2])
	}
	if rows[1][3] != "08.01.25 09:00" {
		t.Errorf("timestamp cell = %q", rows[1][3])
	}
}
