package postgres

// FetchLog is the read side of the fetch log: recent attempts and
// per-selection counters.
type FetchLog struct {
	*FetchEventStore
	*SelectionStatsStore
}

func NewFetchLog(events *FetchEventStore, stats *SelectionStatsStore) *FetchLog {
	return &FetchLog{FetchEventStore: events, SelectionStatsStore: stats}
}
