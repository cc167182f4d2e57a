package codec

// Aggregator holds the merged counters of every period a track was enabled.
// A track may be enabled and disabled several times during a session.
type Aggregator struct {
	merged  Counters
	periods int
}

// Absorb takes ownership of the live counters: their values are merged into the
// aggregate and the live set is reset, so later activity cannot alias merged counts.
func (a *Aggregator) Absorb(live *Counters) {
	if live == nil {
		return
	}
	a.Add(*live)
	*live = Counters{}
}

// Add merges a snapshot of one enable period. The producer of the snapshot has
// already reset its live counters, as a player does when it reports a disabled track.
func (a *Aggregator) Add(period Counters) {
	a.merged = Merge(a.merged, period)
	a.periods++
}

// Snapshot returns a copy of the merged counters.
func (a *Aggregator) Snapshot() Counters {
	return a.merged
}

// Periods returns how many enable periods were absorbed.
func (a *Aggregator) Periods() int {
	return a.periods
}
