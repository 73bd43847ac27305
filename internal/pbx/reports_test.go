package pbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCallReport(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 8, 28, hour, 15, 0, 0, time.Local)
	}
	calls := []Call{
		{Origin: CallParty{Value: "2001"}, Status: CallStatus{Answered: true}, Timestamp: at(9)},
		{Origin: CallParty{Value: "2001"}, Status: CallStatus{Answered: false}, Timestamp: at(9)},
		{Origin: CallParty{Value: "2002"}, Status: CallStatus{Answered: false}, Timestamp: at(9)},
		{Origin: CallParty{Value: "2002"}, Status: CallStatus{Answered: false}, Timestamp: at(14)},
		{Origin: CallParty{Value: "2003"}, Status: CallStatus{Answered: true}, Timestamp: at(14)},
	}

	r := BuildCallReport(calls)

	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 2, r.Answered)
	assert.Equal(t, 3, r.Missed)
	assert.InDelta(t, 0.4, r.AnswerRate, 0.001)

	assert.Equal(t, 9, r.PeakHour)
	assert.Equal(t, 3, r.PeakHourCalls)

	require.Len(t, r.MissedByOrigin, 2)
	assert.Equal(t, CountEntry{Value: "2002", Count: 2}, r.MissedByOrigin[0])
	assert.Equal(t, CountEntry{Value: "2001", Count: 1}, r.MissedByOrigin[1])
}

func TestBuildCallReportEmpty(t *testing.T) {
	r := BuildCallReport(nil)

	assert.Zero(t, r.Total)
	assert.Zero(t, r.AnswerRate)
	assert.Equal(t, -1, r.PeakHour, "no timestamps means no peak hour")
	assert.Empty(t, r.MissedByOrigin)
}
