package history

import "strings"

// LogFormat is the git pretty format for one revision per line.
const LogFormat = "%H|%ai|%s"

// DateLayout matches git's %ai author date.
const DateLayout = "2006-01-02 15:04:05 -0700"

const shortCommitLen = 8

// Revision is one commit that touched an asset.
type Revision struct {
	Commit  string
	Date    string
	Subject string
}

// Short returns the abbreviated commit id.
func (r Revision) Short() string { return ShortCommit(r.Commit) }

// ShortCommit returns the first eight characters of a commit id. Shorter ids
// are returned unchanged.
func ShortCommit(commit string) string {
	if len(commit) <= shortCommitLen {
		return commit
	}
	return commit[:shortCommitLen]
}

// ParseLog parses "commit|date|subject" lines. Blank lines and lines without
// three fields are skipped. The subject may itself contain '|'.
func ParseLog(out string) []Revision {
	var revs []Revision
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		revs = append(revs, Revision{Commit: parts[0], Date: parts[1], Subject: parts[2]})
	}
	return revs
}
