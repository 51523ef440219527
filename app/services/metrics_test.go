package services

import (
	"testing"
	"time"

	"eduface/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMetricsStore serves canned counts keyed by status and day.
type fakeMetricsStore struct {
	students       int
	byStatus       map[models.AttendanceStatus]int
	withAttendance int
	countOnDate    map[string]int
	byGrade        map[string]int
	details        []*models.AttendanceWithStudent
}

func (f *fakeMetricsStore) CountStudents(grade, section string) (int, error) {
	return f.students, nil
}

func (f *fakeMetricsStore) CountAttendance(r models.DateRange, grade, section string, status models.AttendanceStatus) (int, error) {
	return f.byStatus[status], nil
}

func (f *fakeMetricsStore) CountStudentsWithAttendance(r models.DateRange, grade, section string) (int, error) {
	return f.withAttendance, nil
}

func (f *fakeMetricsStore) CountAttendanceOnDate(day time.Time) (int, error) {
	return f.countOnDate[day.Format("2006-01-02")], nil
}

func (f *fakeMetricsStore) CountByGradeOnDate(day time.Time) (map[string]int, error) {
	return f.byGrade, nil
}

func (f *fakeMetricsStore) AttendanceDetails(r models.DateRange, grade, section string) ([]*models.AttendanceWithStudent, error) {
	return f.details, nil
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestToday_Counts(t *testing.T) {
	store := &fakeMetricsStore{
		students: 10,
		byStatus: map[models.AttendanceStatus]int{
			"":            7,
			models.OnTime: 5,
			models.Late:   2,
		},
	}
	agg := NewAggregator(store, cutoffAt(7, 30)).
		WithClock(fixedClock(d(2026, 3, 4)))

	m, err := agg.Today()
	require.NoError(t, err)
	assert.Equal(t, 7, m.TotalToday)
	assert.Equal(t, 5, m.PunctualToday)
	assert.Equal(t, 2, m.LateToday)
	assert.Equal(t, 3, m.AbsentToday)
}

func TestToday_AbsentNeverNegative(t *testing.T) {
	// More records than registered students can only happen after students
	// are deleted; the count must clamp at zero.
	store := &fakeMetricsStore{
		students: 2,
		byStatus: map[models.AttendanceStatus]int{"": 5},
	}
	agg := NewAggregator(store, cutoffAt(7, 30)).WithClock(fixedClock(d(2026, 3, 4)))

	m, err := agg.Today()
	require.NoError(t, err)
	assert.Equal(t, 0, m.AbsentToday)
}

func TestSummary_Percentages(t *testing.T) {
	store := &fakeMetricsStore{
		students: 5,
		byStatus: map[models.AttendanceStatus]int{
			"":            8,
			models.OnTime: 6,
			models.Late:   2,
		},
		withAttendance: 2,
	}
	agg := NewAggregator(store, cutoffAt(7, 30))

	m, err := agg.Summary(models.DateRange{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, m.StudentsTotal)
	assert.Equal(t, 8, m.RecordsTotal)
	assert.Equal(t, 75.0, m.PunctualityPct)
	assert.Equal(t, 25.0, m.LatePct)
	assert.Equal(t, 60.0, m.AbsentPct) // 3 of 5 students never attended
}

func TestSummary_ZeroRecords(t *testing.T) {
	store := &fakeMetricsStore{students: 0, byStatus: map[models.AttendanceStatus]int{}}
	agg := NewAggregator(store, cutoffAt(7, 30))

	m, err := agg.Summary(models.DateRange{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.PunctualityPct)
	assert.Equal(t, 0.0, m.LatePct)
	assert.Equal(t, 0.0, m.AbsentPct)
}

func TestWeekly_LastSevenDaysOldestFirst(t *testing.T) {
	today := d(2026, 3, 8) // Sunday
	store := &fakeMetricsStore{
		students: 10,
		countOnDate: map[string]int{
			"2026-03-02": 3,
			"2026-03-08": 10,
		},
	}
	agg := NewAggregator(store, cutoffAt(7, 30)).WithClock(fixedClock(today))

	m, err := agg.Weekly(7)
	require.NoError(t, err)
	require.Len(t, m.Labels, 7)
	require.Len(t, m.AttendancePct, 7)

	assert.Equal(t, "Mon", m.Labels[0])
	assert.Equal(t, "Sun", m.Labels[6])
	assert.Equal(t, 30.0, m.AttendancePct[0])
	assert.Equal(t, 0.0, m.AttendancePct[1]) // no records that day
	assert.Equal(t, 100.0, m.AttendancePct[6])
}

func TestWeekly_NoStudents(t *testing.T) {
	store := &fakeMetricsStore{students: 0, countOnDate: map[string]int{}}
	agg := NewAggregator(store, cutoffAt(7, 30)).WithClock(fixedClock(d(2026, 3, 8)))

	m, err := agg.Weekly(7)
	require.NoError(t, err)
	for _, p := range m.AttendancePct {
		assert.Equal(t, 0.0, p)
	}
}

func TestByGrade(t *testing.T) {
	store := &fakeMetricsStore{byGrade: map[string]int{"P1": 4, models.NoGrade: 1}}
	agg := NewAggregator(store, cutoffAt(7, 30))

	counts, err := agg.ByGrade(d(2026, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, counts["P1"])
	assert.Equal(t, 1, counts[models.NoGrade])
}

func arrival(hour, minute int) time.Time {
	return time.Date(2026, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestDetailed_BucketsAndGenders(t *testing.T) {
	store := &fakeMetricsStore{details: []*models.AttendanceWithStudent{
		{Attendance: models.Attendance{Time: arrival(7, 10)}, Gender: "male"},   // early, first window
		{Attendance: models.Attendance{Time: arrival(7, 35)}, Gender: "female"}, // first window
		{Attendance: models.Attendance{Time: arrival(7, 50)}, Gender: "male"},   // second window
		{Attendance: models.Attendance{Time: arrival(8, 29)}, Gender: ""},       // fourth window
		{Attendance: models.Attendance{Time: arrival(9, 0)}, Gender: "female"},  // tail
	}}
	agg := NewAggregator(store, cutoffAt(7, 30))

	m, err := agg.Detailed(models.DateRange{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, m.Count)

	assert.Equal(t, 2, m.GenderDistribution["male"])
	assert.Equal(t, 2, m.GenderDistribution["female"])
	assert.Equal(t, 1, m.GenderDistribution[models.UnspecifiedGender])

	assert.Equal(t, 2, m.ArrivalBuckets["07:30-07:45"])
	assert.Equal(t, 1, m.ArrivalBuckets["07:45-08:00"])
	assert.Equal(t, 0, m.ArrivalBuckets["08:00-08:15"])
	assert.Equal(t, 1, m.ArrivalBuckets["08:15-08:30"])
	assert.Equal(t, 1, m.ArrivalBuckets["08:30+"])
}

func TestArrivalBucketLabels(t *testing.T) {
	labels := ArrivalBucketLabels(cutoffAt(7, 30))
	assert.Equal(t, []string{
		"07:30-07:45", "07:45-08:00", "08:00-08:15", "08:15-08:30", "08:30+",
	}, labels)
}
