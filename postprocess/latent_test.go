package postprocess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comtravo/ctparse/artifact"
)

func TestLatentTODRollsToNextDayWhenPast(t *testing.T) {
	ts := time.Date(2020, 1, 1, 21, 0, 0, 0, time.UTC)
	tod := artifact.NewTime().WithHour(20).WithMinute(0)

	got := Apply(ts, tod)
	tm, ok := got.(*artifact.Time)
	require.True(t, ok)
	assert.Equal(t, 2, *tm.Day)
	assert.Equal(t, 20, *tm.Hour)
}

func TestLatentTODSameDayWhenFuture(t *testing.T) {
	ts := time.Date(2020, 1, 1, 7, 0, 0, 0, time.UTC)
	tod := artifact.NewTime().WithHour(20).WithMinute(0)

	got := Apply(ts, tod)
	tm := got.(*artifact.Time)
	assert.Equal(t, 1, *tm.Day)
	assert.Equal(t, 20, *tm.Hour)
}

func TestApplyLeavesNonLatentArtifactsAlone(t *testing.T) {
	ts := time.Date(2020, 1, 1, 7, 0, 0, 0, time.UTC)
	date := artifact.NewTime().WithYear(2021).WithMonth(5).WithDay(5)
	got := Apply(ts, date)
	assert.Same(t, date, got)
}

func TestLatentTimeIntervalRollsBothEnds(t *testing.T) {
	ts := time.Date(2020, 1, 1, 23, 0, 0, 0, time.UTC)
	from := artifact.NewTime().WithHour(20)
	to := artifact.NewTime().WithHour(22)
	iv := artifact.NewInterval(from, to)

	got := Apply(ts, iv)
	riv, ok := got.(*artifact.Interval)
	require.True(t, ok)
	assert.Equal(t, 2, *riv.TFrom.Day)
	assert.Equal(t, 2, *riv.TTo.Day)
}
