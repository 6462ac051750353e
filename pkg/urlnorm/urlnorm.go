// Package urlnorm normalizes article links and derives the stable dedup
// identity enforced by the storage layer.
package urlnorm

import (
	"crypto/md5" //nolint:gosec // dedup key, not a security boundary
	"net/url"
	"sort"
	"strings"
)

// query keys dropped by prefix match
var dropPrefixes = []string{"utm_", "mc_", "mkt_", "ga_"}

// query keys dropped by exact match only
var dropExact = map[string]bool{"fbclid": true, "gclid": true}

// Canonicalize normalizes a raw link: lower-cases scheme and host, keeps
// path and port, drops the fragment and known tracking parameters, and
// re-serializes the remaining query sorted by key. Input that cannot be
// parsed into scheme+host is returned unchanged so malformed links stay
// storable. Canonicalize is idempotent.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return raw
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" {
		host += ":" + port
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(u.EscapedPath())

	if u.RawQuery != "" {
		if q, ok := cleanQuery(u.RawQuery); ok {
			if q != "" {
				b.WriteString("?")
				b.WriteString(q)
			}
		} else {
			// the query is part of the article identity; when it cannot be
			// parsed (e.g. semicolon separators, rejected since Go 1.17)
			// keep it verbatim instead of dropping it
			b.WriteString("?")
			b.WriteString(u.RawQuery)
		}
	}

	return b.String()
}

// DedupKey returns the fixed-width digest of a canonical URL, used as the
// storage uniqueness constraint.
func DedupKey(canonical string) [16]byte {
	return md5.Sum([]byte(canonical)) //nolint:gosec // dedup key, not a security boundary
}

// cleanQuery drops tracking parameters and re-serializes the rest sorted by
// key. Returns "" when nothing survives, and ok=false when the query cannot
// be parsed at all.
func cleanQuery(rawQuery string) (q string, ok bool) {
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", false
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if dropParam(k) {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", true
	}
	sort.Strings(keys)

	kept := url.Values{}
	for _, k := range keys {
		kept[k] = params[k]
	}
	return kept.Encode(), true // Encode sorts by key
}

func dropParam(key string) bool {
	lk := strings.ToLower(key)
	if dropExact[lk] {
		return true
	}
	for _, p := range dropPrefixes {
		if strings.HasPrefix(lk, p) {
			return true
		}
	}
	return false
}
