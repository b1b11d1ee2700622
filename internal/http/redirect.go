package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// ErrUnsafeRedirect is returned for redirect targets that leave this origin.
var ErrUnsafeRedirect = errors.New("unsafe redirect target")

// SafeRedirect resolves target against the origin of r and returns the local
// path to redirect to. Targets that resolve to another host or a non-HTTP
// scheme, or that contain backslashes or control characters, are rejected.
func SafeRedirect(r *http.Request, target string) (string, error) {
	if target == "" || strings.ContainsRune(target, '\\') || strings.IndexFunc(target, isControl) >= 0 {
		return "", ErrUnsafeRedirect
	}
	if schemeRelative(target) {
		return "", ErrUnsafeRedirect
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	base := &url.URL{Scheme: scheme, Host: r.Host, Path: "/"}

	ref, err := url.Parse(target)
	if err != nil {
		return "", ErrUnsafeRedirect
	}
	resolved := base.ResolveReference(ref)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", ErrUnsafeRedirect
	}
	if resolved.User != nil || !strings.EqualFold(resolved.Host, base.Host) {
		return "", ErrUnsafeRedirect
	}
	// Dot segments collapse during resolution, so "/.//host" only turns
	// into a scheme-relative path here.
	local := resolved.RequestURI()
	if schemeRelative(local) {
		return "", ErrUnsafeRedirect
	}
	return local, nil
}

// schemeRelative reports whether a browser would read p as "//host/...".
func schemeRelative(p string) bool {
	return strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\")
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
