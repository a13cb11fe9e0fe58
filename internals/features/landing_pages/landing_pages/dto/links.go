package dto

import (
	"net/url"
	"strings"
)

// IsSafeLink accepts http(s), mailto and tel URLs, site-relative paths and
// in-page anchors. Anything else (javascript:, data:, //host) is refused.
func IsSafeLink(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "#") {
		return true
	}
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, `/\`)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "mailto", "tel":
		return u.Opaque != "" || u.Path != ""
	default:
		return false
	}
}
