package envguard

// Recorder receives engine events for metrics. *metrics.Collector
// implements it.
type Recorder interface {
	RecordRegistry(source string, count int)
	RecordFirstAccess(origin string, present bool)
	RecordCacheHit()
	RecordPassthrough(entry string)
	RecordScrub(outcome string)
	RecordHandoff(outcome string, loaded int)
}

type nopRecorder struct{}

func (nopRecorder) RecordRegistry(string, int)     {}
func (nopRecorder) RecordFirstAccess(string, bool) {}
func (nopRecorder) RecordCacheHit()                {}
func (nopRecorder) RecordPassthrough(string)       {}
func (nopRecorder) RecordScrub(string)             {}
func (nopRecorder) RecordHandoff(string, int)      {}
