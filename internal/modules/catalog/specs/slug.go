package specs

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe   = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	separatorRe = regexp.MustCompile(`[\s_-]+`)
	keySafeRe   = regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)*$`)
)

// Slugify turns a human label into the key-safe identifier used inside flat
// specification keys. It may return "" for labels made only of punctuation.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return ""
	}
	// transform chains carry state, so build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = nonWordRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "-_")
}

// slugOrFallback derives the storage slug for a label. When the label does not
// produce one, a key-safe previous id is reused, otherwise a random id is made.
func slugOrFallback(label, previousID string) string {
	if s := Slugify(label); s != "" {
		return s
	}
	if keySafeRe.MatchString(previousID) {
		return previousID
	}
	return randomID()
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
