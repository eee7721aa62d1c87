package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "figures/a.png", Path("figures/a.png")},
		{"File", KeyFile, "slides.qmd", File("slides.qmd")},
		{"SlideID", KeySlideID, "2024-01-15_a", SlideID("2024-01-15_a")},
		{"Topic", KeyTopic, "intro", Topic("intro")},
		{"Commit", KeyCommit, "abc12345", Commit("abc12345")},
		{"Backend", KeyBackend, "cli", Backend("cli")},
		{"Document", KeyDocument, "recent", Document("recent")},
		{"Stage", KeyStage, "extract", Stage("extract")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Revision(3); a.Key != KeyRevision || a.Value.Int64() != 3 {
		t.Fatalf("unexpected revision attr: %v", a)
	}
	if a := Count(2); a.Key != KeyCount || a.Value.Int64() != 2 {
		t.Fatalf("unexpected count attr: %v", a)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("nil error should yield empty value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("unexpected error value: %q", a.Value.String())
	}
}
