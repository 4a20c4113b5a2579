package interfaces

// SchedulerInterface drives the background jobs: snapshot persistence,
// player refresh and cold eviction. Restore runs before the first tick,
// Persist after the last one.
type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}
