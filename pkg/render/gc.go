package render

// collect sweeps the registry when it holds more entries than the
// threshold. Collected component IDs lose their state when ReclaimState
// is on.
func (r *Renderer) collect() int {
	dead, swept := r.nodes.Collect(r.opts.GCThreshold)
	if !swept {
		return 0
	}

	if r.opts.ReclaimState {
		for _, id := range dead {
			r.dropState(id)
		}
	}

	r.stats.Collected += len(dead)
	r.opts.Metrics.recordSweep(len(dead))
	if len(dead) > 0 {
		r.opts.Logger.Debug("registry swept", "collected", len(dead), "entries", r.nodes.Len())
	}
	return len(dead)
}
