package nfsiostat

import "time"

// Reconstruct stamps records with the time of the sweep they belong to and
// drops the leading partial sweep.
//
// A sweep starts at every record whose mount equals the mount of the first
// record. The first such recurrence advances the clock by one interval past
// start, as does every recurrence after it. If the first mount never recurs
// an *UnderflowError is returned.
func Reconstruct(records []Record, start time.Time, interval time.Duration) ([]Record, error) {
	k := SweepBoundary(records)
	if k < 0 {
		return nil, &UnderflowError{Records: len(records)}
	}

	first := records[0].Mount
	out := make([]Record, 0, len(records)-k)
	ts := start
	for _, r := range records[k:] {
		if r.Mount == first {
			ts = ts.Add(interval)
		}
		r.Timestamp = ts
		out = append(out, r)
	}
	return out, nil
}

// SweepBoundary returns the index of the first record after index 0 that
// shares its mount, or -1 if there is none.
func SweepBoundary(records []Record) int {
	if len(records) < 2 {
		return -1
	}
	first := records[0].Mount
	for i := 1; i < len(records); i++ {
		if records[i].Mount == first {
			return i
		}
	}
	return -1
}
