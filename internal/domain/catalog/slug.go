package catalog

import (
	"encoding/base64"
	"strings"

	"github.com/komorebi/backend/internal/domain/shared"
)

const slugNameMaxLen = 30

// EncodeSlug builds a shareable URL slug for a product. The name is
// lowercased and reduced to [a-z0-9] runs joined by hyphens, then the raw
// ID is appended as unpadded URL-safe base64 so the identifier is not
// exposed verbatim.
func EncodeSlug(id, name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	nameSlug := strings.TrimRight(b.String(), "-")
	if len(nameSlug) > slugNameMaxLen {
		nameSlug = nameSlug[:slugNameMaxLen]
		nameSlug = strings.TrimRight(nameSlug, "-")
	}

	encoded := base64.RawURLEncoding.EncodeToString([]byte(id))
	if nameSlug == "" {
		return encoded
	}
	return nameSlug + "-" + encoded
}

// DecodeSlug recovers the product ID from a slug produced by EncodeSlug.
// The encoded ID is the segment after the last hyphen.
func DecodeSlug(slug string) (string, error) {
	idx := strings.LastIndex(slug, "-")
	encoded := slug
	if idx >= 0 {
		encoded = slug[idx+1:]
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", shared.NewDomainError("INVALID_SLUG", "Slug does not contain a valid product reference")
	}
	return string(raw), nil
}
