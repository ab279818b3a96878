package factory

import (
	"sort"

	"github.com/samber/lo"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player"
)

// snapshot returns live entries in insertion order. Queries are
// point-in-time reads; a concurrent creation or eviction may not be
// reflected in an in-flight snapshot.
func (f *Factory) snapshot() []*entry {
	f.mu.Lock()
	entries := lo.Values(f.registry)
	f.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	return entries
}

func (f *Factory) GetActiveInstances() []player.Instance {
	return lo.Map(f.snapshot(), func(e *entry, _ int) player.Instance {
		return e.instance
	})
}

func (f *Factory) GetInstancesByType(kind media.Kind) []player.Instance {
	instances := lo.Filter(f.snapshot(), func(e *entry, _ int) bool {
		return e.instance.Kind() == kind
	})
	return lo.Map(instances, func(e *entry, _ int) player.Instance {
		return e.instance
	})
}

type Stats struct {
	Total       int                `json:"total"`
	ByKind      map[media.Kind]int `json:"by_kind"`
	EstimatedMB int                `json:"estimated_mb"`
}

func (f *Factory) GetStats() Stats {
	entries := f.snapshot()

	stats := Stats{
		Total:  len(entries),
		ByKind: make(map[media.Kind]int),
	}
	for _, e := range entries {
		stats.ByKind[e.instance.Kind()]++
		stats.EstimatedMB += media.CostMB(e.instance.Kind())
	}
	return stats
}
