package factory

import (
	"sort"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player"
)

type CleanupReport struct {
	TotalBeforeMB int      `json:"total_before_mb"`
	TotalAfterMB  int      `json:"total_after_mb"`
	EvictedIDs    []string `json:"evicted_ids,omitempty"`
}

// PerformMemoryCleanup evicts inactive instances until total estimated
// memory drops to 80% of the budget (hysteresis against thrashing) or
// no inactive instances remain. Instances whose config marks them
// active are never evicted, even if that leaves the estimate over
// budget: not interrupting a foreground experience outranks the memory
// ceiling. A misbehaving instance's cleanup never aborts the sweep.
func (f *Factory) PerformMemoryCleanup(budgetMB int) CleanupReport {
	report := CleanupReport{}

	f.mu.Lock()
	total := 0
	candidates := make([]*entry, 0, len(f.registry))
	ids := make(map[*entry]string, len(f.registry))
	for id, e := range f.registry {
		total += media.CostMB(e.instance.Kind())
		if !e.instance.Config().Active {
			candidates = append(candidates, e)
			ids[e] = id
		}
	}
	f.mu.Unlock()

	report.TotalBeforeMB = total
	report.TotalAfterMB = total
	if total <= budgetMB {
		return report
	}

	// Inactive-first is implicit (only inactive entries are candidates);
	// ties break deterministically by insertion order.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].seq < candidates[j].seq
	})

	target := budgetMB * 4 / 5
	for _, e := range candidates {
		if total <= target {
			break
		}

		id := ids[e]
		f.mu.Lock()
		if _, live := f.registry[id]; !live {
			f.mu.Unlock()
			continue
		}
		delete(f.registry, id)
		f.mu.Unlock()

		f.safeCleanup(id, e.instance)
		total -= media.CostMB(e.instance.Kind())
		report.EvictedIDs = append(report.EvictedIDs, id)

		f.logger.Info("evicted inactive player",
			"instance_id", id,
			"kind", e.instance.Kind().String(),
			"total_mb", total,
			"budget_mb", budgetMB)
	}

	report.TotalAfterMB = total
	return report
}

// safeCleanup keeps a misbehaving instance from taking down the sweep.
func (f *Factory) safeCleanup(id string, inst player.Instance) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("instance cleanup panicked during eviction",
				"instance_id", id, "panic", r)
		}
	}()
	inst.Cleanup()
}
