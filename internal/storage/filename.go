package storage

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeFilename turns a client-supplied file name into a flat ASCII name
// safe to use as a storage key: it decomposes accents, drops non-ASCII runes,
// turns path separators and whitespace runs into underscores, removes every
// character outside [A-Za-z0-9_.-] and trims leading/trailing dots and
// underscores. "../../etc/passwd" becomes "etc_passwd". The result may be empty.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte(' ')
		case r < 0x80:
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range joined {
		if isFilenameRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// HasAllowedExtension reports whether name ends in one of allowed. The
// comparison ignores case and a leading dot in the allow-list entries.
func HasAllowedExtension(name string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == strings.TrimPrefix(strings.ToLower(strings.TrimSpace(a)), ".") {
			return true
		}
	}
	return false
}

// ContentTypeFor returns the image MIME type for a sanitized file name.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func isFilenameRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '.' || r == '-'
}
