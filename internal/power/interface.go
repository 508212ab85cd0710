package power

import "strconv"

// Enumerator lists the power sources reported by the platform. An error
// means the enumeration itself failed; an empty slice means there are no
// batteries.
type Enumerator interface {
	Enumerate() ([]Source, error)
}

// Source is one reported power source
type Source interface {
	// Power returns the instantaneous power draw in watts
	Power() (float64, error)
}

// Kind tags a Sample
type Kind int

const (
	KindReading Kind = iota
	KindAbsent
	KindQueryFailed
)

func (k Kind) String() string {
	switch k {
	case KindReading:
		return "reading"
	case KindAbsent:
		return "absent"
	case KindQueryFailed:
		return "query_failed"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Sample is the result of one query. Watts is only meaningful for
// KindReading and Err only for KindQueryFailed.
type Sample struct {
	Kind  Kind
	Watts float64
	Err   error
}

// Reading returns a sample carrying a power draw in watts
func Reading(watts float64) Sample {
	return Sample{Kind: KindReading, Watts: watts}
}

// Absent returns a sample for a machine without batteries
func Absent() Sample {
	return Sample{Kind: KindAbsent}
}

// QueryFailed returns a sample for a failed query
func QueryFailed(err error) Sample {
	return Sample{Kind: KindQueryFailed, Err: err}
}
