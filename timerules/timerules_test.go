package timerules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/corpus"
	"github.com/comtravo/ctparse/match"
	"github.com/comtravo/ctparse/rule"
	"github.com/comtravo/ctparse/scorer"
	"github.com/comtravo/ctparse/search"
)

var refTime = time.Date(2020, 6, 15, 10, 0, 0, 0, time.UTC) // a Monday

func parseOne(t *testing.T, txt string) []search.Result {
	t.Helper()
	results, err := search.Parse(rule.Global, scorer.Dummy{}, match.Preprocess(txt), refTime, search.Options{
		RelativeMatchLen: 1.0,
	})
	require.NoError(t, err)
	return results
}

func TestWeekdayProducesDOW(t *testing.T) {
	results := parseOne(t, "monday")
	best, ok := search.Best(results)
	require.True(t, ok)
	tm, ok := best.Resolution.(*artifact.Time)
	require.True(t, ok)
	dt, err := tm.DT()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, dt.Weekday())
}

func TestDDMonthProducesDayOfYear(t *testing.T) {
	results := parseOne(t, "5. january")
	best, ok := search.Best(results)
	require.True(t, ok)
	tm, ok := best.Resolution.(*artifact.Time)
	require.True(t, ok)
	require.NotNil(t, tm.Day)
	require.NotNil(t, tm.Month)
	assert.Equal(t, 5, *tm.Day)
	assert.Equal(t, 1, *tm.Month)
}

func TestTomorrowAnchorsToReferenceDate(t *testing.T) {
	results := parseOne(t, "tomorrow")
	best, ok := search.Best(results)
	require.True(t, ok)
	tm, ok := best.Resolution.(*artifact.Time)
	require.True(t, ok)
	assert.Equal(t, refTime.AddDate(0, 0, 1).Day(), *tm.Day)
}

func TestHHMMWithPM(t *testing.T) {
	results := parseOne(t, "3:30pm")
	best, ok := search.Best(results)
	require.True(t, ok)
	tm, ok := best.Resolution.(*artifact.Time)
	require.True(t, ok)
	require.NotNil(t, tm.Hour)
	require.NotNil(t, tm.Minute)
	assert.Equal(t, 15, *tm.Hour)
	assert.Equal(t, 30, *tm.Minute)
}

func TestNextMondayAdvancesAWeek(t *testing.T) {
	// refTime itself is a Monday, so "next monday" must land 7 days out,
	// not 0.
	results := parseOne(t, "next monday")
	best, ok := search.Best(results)
	require.True(t, ok)
	tm, ok := best.Resolution.(*artifact.Time)
	require.True(t, ok)
	require.NotNil(t, tm.Day)
	assert.Equal(t, refTime.AddDate(0, 0, 7).Day(), *tm.Day)
}

func TestDateRangeRejectsOutOfOrderBound(t *testing.T) {
	// "5. january to 3. january" has d1 >= d2 in the same year, so the
	// range-forming producer must reject it (return nil) rather than
	// emit a backwards interval.
	results := parseOne(t, "5. january to 3. january")
	for _, r := range results {
		iv, ok := r.Resolution.(*artifact.Interval)
		if !ok {
			continue
		}
		require.NotNil(t, iv.TFrom)
		require.NotNil(t, iv.TTo)
		assert.False(t, iv.TFrom.Equal(iv.TTo))
	}
}

func TestTODTODAllowsOvernightPair(t *testing.T) {
	// "11:30 PM - 3:35 AM" used to be rejected outright by ruleTODTOD
	// since t1.Hour > t2.Hour; it must now pass through as a bare
	// TOD-TOD interval for ruleDateInterval to day-wrap once a date
	// attaches.
	reg := rule.NewRegistry()
	registerIntervals(reg)

	t1 := artifact.NewTime().WithHour(23).WithMinute(30)
	t2 := artifact.NewTime().WithHour(3).WithMinute(35)
	out := reg.Rules["ruleTODTOD"].Producer(refTime, []artifact.Artifact{t1, nil, t2})
	iv, ok := out.(*artifact.Interval)
	require.True(t, ok)
	assert.Equal(t, 23, *iv.TFrom.Hour)
	assert.Equal(t, 3, *iv.TTo.Hour)
}

func TestDateIntervalWrapsOvernightTODTOD(t *testing.T) {
	// ruleDateInterval - day wrap: a TOD-TOD pair that reads backwards
	// on the given date means t_to falls on the following day.
	reg := rule.NewRegistry()
	registerIntervals(reg)

	d := artifact.NewTime().WithYear(2018).WithMonth(11).WithDay(13)
	todtod := artifact.NewInterval(
		artifact.NewTime().WithHour(23).WithMinute(30),
		artifact.NewTime().WithHour(3).WithMinute(35),
	)

	out := reg.Rules["ruleDateInterval"].Producer(refTime, []artifact.Artifact{d, todtod})
	iv, ok := out.(*artifact.Interval)
	require.True(t, ok)

	require.NotNil(t, iv.TFrom)
	require.NotNil(t, iv.TTo)
	assert.Equal(t, 2018, *iv.TFrom.Year)
	assert.Equal(t, 11, *iv.TFrom.Month)
	assert.Equal(t, 13, *iv.TFrom.Day)
	assert.Equal(t, 23, *iv.TFrom.Hour)
	assert.Equal(t, 30, *iv.TFrom.Minute)

	assert.Equal(t, 2018, *iv.TTo.Year)
	assert.Equal(t, 11, *iv.TTo.Month)
	assert.Equal(t, 14, *iv.TTo.Day)
	assert.Equal(t, 3, *iv.TTo.Hour)
	assert.Equal(t, 35, *iv.TTo.Minute)
}

func TestDateIntervalWrapsAcrossMonthBoundary(t *testing.T) {
	// The wrap must roll the month/year over too, not just the day.
	reg := rule.NewRegistry()
	registerIntervals(reg)

	d := artifact.NewTime().WithYear(2020).WithMonth(12).WithDay(31)
	todtod := artifact.NewInterval(
		artifact.NewTime().WithHour(22),
		artifact.NewTime().WithHour(1),
	)

	out := reg.Rules["ruleDateInterval"].Producer(refTime, []artifact.Artifact{d, todtod})
	iv, ok := out.(*artifact.Interval)
	require.True(t, ok)

	assert.Equal(t, 2020, *iv.TFrom.Year)
	assert.Equal(t, 12, *iv.TFrom.Month)
	assert.Equal(t, 31, *iv.TFrom.Day)

	assert.Equal(t, 2021, *iv.TTo.Year)
	assert.Equal(t, 1, *iv.TTo.Month)
	assert.Equal(t, 1, *iv.TTo.Day)
}

func TestCorpusRunsAgainstGlobalRegistry(t *testing.T) {
	target := artifact.NewTime().WithYear(2020).WithMonth(6).WithDay(22).NBString()
	result, err := corpus.Run(rule.Global, []corpus.Example{
		{Target: target, RefTime: refTime, Tests: []string{"monday", "montag"}},
	})
	require.NoError(t, err)
	assert.True(t, result.AllPass)
}
