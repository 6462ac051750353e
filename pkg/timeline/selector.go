// Package timeline groups scored items into story clusters and lays them out
// for display. The computation is pure and stateless: same rows in, same
// timeline out, safe for concurrent requests.
package timeline

import (
	"sort"
	"time"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// fallbackClusterKey collects rows with no cluster assignment
const fallbackClusterKey = "other/misc"

// Options tune primary selection and layout
type Options struct {
	TrustedSources []string       // sources that win primary selection unconditionally
	MaxPerSource   int            // diversity cap, clusters fronted by one source
	MaxAlternates  int            // alternates shown before the overflow count
	Location       *time.Location // for midnight bucketing, local time when nil
	Now            time.Time      // reference time, time.Now() when zero
}

// Alternate is a non-primary coverage link within a cluster
type Alternate struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	ID     int64  `json:"id"`
}

// Cluster is one story: a primary row plus alternate coverage
type Cluster struct {
	Key        string            `json:"key"`
	Primary    domain.ScoredItem `json:"primary"`
	Alternates []Alternate       `json:"alternates,omitempty"`
	MoreCount  int               `json:"more_count,omitempty"` // alternates beyond MaxAlternates
}

// Timeline is the bucketed display projection
type Timeline struct {
	Today     []Cluster `json:"today"`
	Yesterday []Cluster `json:"yesterday"`
	Earlier   []Cluster `json:"earlier"`
	Unread    int       `json:"unread"` // clusters whose primary is unread
}

// cluster accumulates rows during grouping; rows keeps input order
type cluster struct {
	key     string
	primary domain.ScoredItem
	rows    []domain.ScoredItem
}

// Build computes the timeline from scored rows. Rows must arrive in the
// storage order (effective time desc, relevance desc); both primary
// selection and the diversity cap depend on it.
func Build(rows []domain.ScoredItem, opts Options) Timeline {
	if opts.MaxPerSource <= 0 {
		opts.MaxPerSource = 3
	}
	if opts.MaxAlternates <= 0 {
		opts.MaxAlternates = 3
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	trusted := make(map[string]bool, len(opts.TrustedSources))
	for _, name := range opts.TrustedSources {
		trusted[name] = true
	}

	clusters := group(rows, trusted)

	// order clusters by primary effective time, newest first; stable so the
	// input order breaks ties
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].primary.EffectiveTime().After(clusters[j].primary.EffectiveTime())
	})

	// single-pass diversity cap: earlier-in-time clusters win the quota, and
	// once a source runs over, all its later clusters are dropped
	sourceCounts := make(map[string]int)
	kept := clusters[:0]
	for _, c := range clusters {
		src := c.primary.SourceName
		sourceCounts[src]++
		if sourceCounts[src] <= opts.MaxPerSource {
			kept = append(kept, c)
		}
	}

	todayStart := midnight(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var tl Timeline
	for _, c := range kept {
		out := c.render(opts.MaxAlternates)
		if !c.primary.Read {
			tl.Unread++
		}
		switch t := c.primary.EffectiveTime().In(loc); {
		case !t.Before(todayStart):
			tl.Today = append(tl.Today, out)
		case !t.Before(yesterdayStart):
			tl.Yesterday = append(tl.Yesterday, out)
		default:
			tl.Earlier = append(tl.Earlier, out)
		}
	}
	return tl
}

// group partitions rows by cluster key and selects each cluster's primary.
// An ordered slice plus an index map keeps the result deterministic; the
// first-seen order of keys is preserved.
func group(rows []domain.ScoredItem, trusted map[string]bool) []cluster {
	var ordered []cluster
	index := make(map[string]int)

	for _, row := range rows {
		key := row.ClusterKey
		if key == "" {
			key = fallbackClusterKey
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(ordered)
			ordered = append(ordered, cluster{key: key, primary: row, rows: []domain.ScoredItem{row}})
			continue
		}

		c := &ordered[i]
		c.rows = append(c.rows, row)
		if replaces(row, c.primary, trusted) {
			c.primary = row
		}
	}
	return ordered
}

// replaces reports whether row should displace cur as cluster primary.
// Trust tier dominates unconditionally; within a tier, strictly higher
// relevance wins, then strictly newer effective time on equal relevance.
func replaces(row, cur domain.ScoredItem, trusted map[string]bool) bool {
	rowTrusted, curTrusted := trusted[row.SourceName], trusted[cur.SourceName]
	switch {
	case rowTrusted && !curTrusted:
		return true
	case rowTrusted != curTrusted:
		return false
	}
	if row.Relevance != cur.Relevance {
		return row.Relevance > cur.Relevance
	}
	return row.EffectiveTime().After(cur.EffectiveTime())
}

// render produces the display cluster with bounded alternates
func (c *cluster) render(maxAlternates int) Cluster {
	out := Cluster{Key: c.key, Primary: c.primary}

	for _, row := range c.rows {
		if row.ID == c.primary.ID {
			continue
		}
		out.Alternates = append(out.Alternates, Alternate{Source: row.SourceName, URL: row.URL, ID: row.ID})
	}
	if len(out.Alternates) > maxAlternates {
		out.MoreCount = len(out.Alternates) - maxAlternates
		out.Alternates = out.Alternates[:maxAlternates]
	}
	return out
}

// midnight returns the start of t's day in its location
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
