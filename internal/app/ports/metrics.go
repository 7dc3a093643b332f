package ports

type ActionMetrics interface {
	RecordSuccess(action string)
	RecordConflict()
	RecordFailure()
}
