package registry

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify lower-cases title, turns spaces into underscores and drops every
// rune that is neither a letter, a digit nor an underscore.
func Slugify(title string) string {
	lowered := strings.ReplaceAll(strings.ToLower(title), " ", "_")
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CandidateID returns "<created>_<slug>" without any collision handling.
func CandidateID(title, created string) string {
	return created + "_" + Slugify(title)
}

// AllocateID returns the first id not in existing among the candidate,
// candidate_2, candidate_3, and so on.
func AllocateID(title, created string, existing map[string]struct{}) string {
	candidate := CandidateID(title, created)
	if _, taken := existing[candidate]; !taken {
		return candidate
	}
	for n := 2; ; n++ {
		id := candidate + "_" + strconv.Itoa(n)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}
