package auth

import (
	"strings"

	"github.com/spec-kit/requisition-service/pkg/util"
)

// NormalizeUsername canonicalizes a username: lowercase, diacritics
// stripped, anything outside [a-z0-9] becomes a dot, runs of dots collapse,
// leading/trailing dots are trimmed. Idempotent.
func NormalizeUsername(username string) string {
	folded := util.Fold(strings.TrimSpace(username))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('.')
		}
	}

	normalized := b.String()
	for strings.Contains(normalized, "..") {
		normalized = strings.ReplaceAll(normalized, "..", ".")
	}
	return strings.Trim(normalized, ".")
}
