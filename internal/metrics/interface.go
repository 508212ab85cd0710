package metrics

// Sample results as recorded by the sampling loop
const (
	ResultReading     = "reading"
	ResultAbsent      = "absent"
	ResultQueryFailed = "query_failed"
)

// Recorder counts pipeline activity. Implementations are safe for
// concurrent use; the sampler and the UI loop share one.
type Recorder interface {
	RecordSample(result string)
	RecordApply()
	RecordInput(kind string)
	Summary() (Summary, error)
}

// Summary is a point-in-time copy of the counters
type Summary struct {
	Readings    uint64
	Absent      uint64
	QueryFailed uint64
	Applies     uint64
	Inputs      uint64
}
