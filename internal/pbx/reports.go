package pbx

import "sort"

// CountEntry pairs a grouping value with how often it occurred
type CountEntry struct {
	Value string
	Count int
}

// CallReport aggregates call records for the reports view: answer rate,
// the busiest hour of the day, and which origins miss the most calls.
type CallReport struct {
	Total      int
	Answered   int
	Missed     int
	AnswerRate float64

	// PeakHour is the local hour of day (0-23) with the most calls, or -1
	// when no call carries a timestamp.
	PeakHour      int
	PeakHourCalls int

	// MissedByOrigin lists origins by missed-call count, highest first.
	MissedByOrigin []CountEntry
}

// BuildCallReport computes the aggregates over the given call records
func BuildCallReport(calls []Call) CallReport {
	r := CallReport{PeakHour: -1}
	var hours [24]int
	missed := make(map[string]int)

	for _, c := range calls {
		r.Total++
		if c.Status.Answered {
			r.Answered++
		} else {
			r.Missed++
			if c.Origin.Value != "" {
				missed[c.Origin.Value]++
			}
		}
		if !c.Timestamp.IsZero() {
			h := c.Timestamp.Local().Hour()
			hours[h]++
			if hours[h] > r.PeakHourCalls {
				r.PeakHour = h
				r.PeakHourCalls = hours[h]
			}
		}
	}

	if r.Total > 0 {
		r.AnswerRate = float64(r.Answered) / float64(r.Total)
	}

	r.MissedByOrigin = make([]CountEntry, 0, len(missed))
	for value, count := range missed {
		r.MissedByOrigin = append(r.MissedByOrigin, CountEntry{Value: value, Count: count})
	}
	sort.Slice(r.MissedByOrigin, func(i, j int) bool {
		if r.MissedByOrigin[i].Count != r.MissedByOrigin[j].Count {
			return r.MissedByOrigin[i].Count > r.MissedByOrigin[j].Count
		}
		return r.MissedByOrigin[i].Value < r.MissedByOrigin[j].Value
	})

	return r
}
