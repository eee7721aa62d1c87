package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []Revision
	}{
		{name: "empty", out: "", want: nil},
		{
			name: "two lines",
			out:  "abc123|2024-03-01 10:00:00 +0100|Update plot\ndef456|2024-02-01 09:00:00 +0100|Initial\n",
			want: []Revision{
				{Commit: "abc123", Date: "2024-03-01 10:00:00 +0100", Subject: "Update plot"},
				{Commit: "def456", Date: "2024-02-01 09:00:00 +0100", Subject: "Initial"},
			},
		},
		{
			name: "subject keeps pipes",
			out:  "abc|2024-01-01 00:00:00 +0000|fix a|b axis",
			want: []Revision{{Commit: "abc", Date: "2024-01-01 00:00:00 +0000", Subject: "fix a|b axis"}},
		},
		{
			name: "malformed and blank lines skipped",
			out:  "\ngarbage\nonly|two\n\nabc|2024-01-01 00:00:00 +0000|ok\r\n",
			want: []Revision{{Commit: "abc", Date: "2024-01-01 00:00:00 +0000", Subject: "ok"}},
		},
		{
			name: "empty subject",
			out:  "abc|2024-01-01 00:00:00 +0000|",
			want: []Revision{{Commit: "abc", Date: "2024-01-01 00:00:00 +0000", Subject: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLog(tt.out))
		})
	}
}

func TestShortCommit(t *testing.T) {
	require.Equal(t, "0123abcd", ShortCommit("0123abcdef0123456789"))
	require.Equal(t, "abc", ShortCommit("abc"))
	require.Equal(t, "12345678", ShortCommit("12345678"))
	require.Equal(t, "0123abcd", Revision{Commit: "0123abcdef"}.Short())
}

func TestVersionFileName(t *testing.T) {
	rev := Revision{Commit: "0123456789abcdef"}
	require.Equal(t, "v1_01234567.png", VersionFileName(1, rev, "figures/results/loss.png"))
	require.Equal(t, "v3_01234567.svg", VersionFileName(3, rev, "figures/diagram.SVG"))
	require.Equal(t, "v2_01234567.png", VersionFileName(2, rev, "figures/noext"))
}

func TestMIMEType(t *testing.T) {
	require.Equal(t, "image/png", MIMEType("a.png"))
	require.Equal(t, "image/jpeg", MIMEType("a.JPG"))
	require.Equal(t, "image/svg+xml", MIMEType("a.svg"))
	require.Equal(t, DefaultMIME, MIMEType("a"))
	require.Equal(t, DefaultMIME, MIMEType("notes.txt"))
}
