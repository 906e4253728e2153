package parser

// Stats counts what the orchestrator did since it was created.
type Stats struct {
	Total          int // Parse calls
	Avoided        int // answered without a remote call
	CacheHits      int
	FastPathHits   int
	RemoteCalls    int
	RemoteFailures int
	Fallbacks      int // local classifier used after a remote attempt
	Rejections     int // invalid transcripts and batches without an amount
}

// AvoidanceRate is the share of parses answered by the cache or the fast path.
func (s Stats) AvoidanceRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Avoided) / float64(s.Total)
}

// Stats returns a snapshot of the counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

func (o *Orchestrator) count(update func(*Stats)) {
	o.mu.Lock()
	update(&o.stats)
	o.mu.Unlock()
}
