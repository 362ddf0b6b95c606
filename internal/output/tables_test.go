package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/hotkey"
	"github.com/yourusername/movetodesktop/internal/state"
)

func TestPrintDesktopsTable(t *testing.T) {
	id, err := desktop.ParseID("{3F2504E0-4F89-11D3-9A0C-0305E82C3301}")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintDesktopsTable(&buf, []desktop.ID{id}, "registry")

	out := buf.String()
	for _, want := range []string{"3F2504E0-4F89-11D3-9A0C-0305E82C3301", "registry"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryTable(&buf, []state.MoveRecord{{
		Time:    time.Now(),
		Param:   0xABC3,
		Index:   3,
		Window:  0x100,
		Outcome: "dropped",
		Error:   "desktop index out of range",
	}})

	out := buf.String()
	for _, want := range []string{"0xabc3", "0x100", "dropped", "out of range"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBindingsTable(t *testing.T) {
	combo, err := hotkey.Parse("win+alt+2")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintBindingsTable(&buf, []hotkey.Binding{{Combo: combo, Desktop: 1}})

	if !strings.Contains(buf.String(), "0xabc1") {
		t.Errorf("output missing param:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"désktop ünavailable", 10, "désktop..."},
		{"日本語のエラーメッセージ", 8, "日本語のエ..."},
		{"ééééé", 5, "ééééé"},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) = %q, not valid UTF-8", tt.in, tt.max, got)
		}
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
