package util

import "strings"

// sensitiveQueryKeys lists query parameters that must never appear in
// request logs verbatim.
var sensitiveQueryKeys = map[string]struct{}{
	"token":        {},
	"auth_token":   {},
	"access_token": {},
	"api_key":      {},
	"apikey":       {},
	"secret":       {},
	"password":     {},
}

// MaskSensitiveQuery masks sensitive query parameter values within the
// raw query string before it is logged.
func MaskSensitiveQuery(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "&")
	changed := false
	for i, part := range parts {
		if part == "" {
			continue
		}
		key := part
		if idx := strings.Index(part, "="); idx >= 0 {
			key = part[:idx]
		}
		if _, sensitive := sensitiveQueryKeys[strings.ToLower(key)]; sensitive {
			parts[i] = key + "=***"
			changed = true
		}
	}
	if !changed {
		return raw
	}
	return strings.Join(parts, "&")
}
