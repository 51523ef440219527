package services

import (
	"fmt"
	"math"
	"time"

	"eduface/app/models"
)

// MetricsStore is the read-only storage surface of the aggregator.
type MetricsStore interface {
	CountStudents(grade, section string) (int, error)
	CountAttendance(r models.DateRange, grade, section string, status models.AttendanceStatus) (int, error)
	CountStudentsWithAttendance(r models.DateRange, grade, section string) (int, error)
	CountAttendanceOnDate(day time.Time) (int, error)
	CountByGradeOnDate(day time.Time) (map[string]int, error)
	AttendanceDetails(r models.DateRange, grade, section string) ([]*models.AttendanceWithStudent, error)
}

// Aggregator computes attendance statistics from the ledger and registry.
// Every query recomputes from current state; nothing is cached.
type Aggregator struct {
	store  MetricsStore
	cutoff time.Time
	now    func() time.Time
}

func NewAggregator(store MetricsStore, cutoff time.Time) *Aggregator {
	return &Aggregator{store: store, cutoff: cutoff, now: time.Now}
}

// WithClock overrides the aggregator's clock. Used by tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// Today reports raw counts for the current day. Absent is the registry size
// minus today's records; no distinct-day computation is needed for a single
// day because at most one record exists per student.
func (a *Aggregator) Today() (*models.TodayMetrics, error) {
	today := DateOf(a.now())
	r := models.SingleDay(today)

	total, err := a.store.CountAttendance(r, "", "", "")
	if err != nil {
		return nil, err
	}
	punctual, err := a.store.CountAttendance(r, "", "", models.OnTime)
	if err != nil {
		return nil, err
	}
	late, err := a.store.CountAttendance(r, "", "", models.Late)
	if err != nil {
		return nil, err
	}
	students, err := a.store.CountStudents("", "")
	if err != nil {
		return nil, err
	}

	absent := students - total
	if absent < 0 {
		absent = 0
	}
	return &models.TodayMetrics{
		TotalToday:    total,
		PunctualToday: punctual,
		LateToday:     late,
		AbsentToday:   absent,
	}, nil
}

// Summary reports percentage statistics over the range and group filters.
// An absent student is one with zero records inside the range; with an
// unbounded range that means "never attended at all".
func (a *Aggregator) Summary(r models.DateRange, grade, section string) (*models.SummaryMetrics, error) {
	total, err := a.store.CountAttendance(r, grade, section, "")
	if err != nil {
		return nil, err
	}
	punctual, err := a.store.CountAttendance(r, grade, section, models.OnTime)
	if err != nil {
		return nil, err
	}
	late, err := a.store.CountAttendance(r, grade, section, models.Late)
	if err != nil {
		return nil, err
	}
	students, err := a.store.CountStudents(grade, section)
	if err != nil {
		return nil, err
	}
	attended, err := a.store.CountStudentsWithAttendance(r, grade, section)
	if err != nil {
		return nil, err
	}

	return &models.SummaryMetrics{
		StudentsTotal:  students,
		RecordsTotal:   total,
		PunctualityPct: pct(punctual, total),
		LatePct:        pct(late, total),
		AbsentPct:      pct(students-attended, students),
	}, nil
}

// Weekly returns the attendance percentage for each of the last `days`
// calendar days ending today, oldest first, labeled by weekday name.
func (a *Aggregator) Weekly(days int) (*models.WeeklyMetrics, error) {
	students, err := a.store.CountStudents("", "")
	if err != nil {
		return nil, err
	}

	today := DateOf(a.now())
	out := &models.WeeklyMetrics{
		Labels:        make([]string, 0, days),
		AttendancePct: make([]float64, 0, days),
	}
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count, err := a.store.CountAttendanceOnDate(day)
		if err != nil {
			return nil, err
		}
		out.Labels = append(out.Labels, day.Format("Mon"))
		out.AttendancePct = append(out.AttendancePct, pct(count, students))
	}
	return out, nil
}

// ByGrade groups the day's record counts by grade label.
func (a *Aggregator) ByGrade(day time.Time) (map[string]int, error) {
	return a.store.CountByGradeOnDate(day)
}

// Detailed reports the gender distribution and the arrival-time histogram
// for the filtered records. Bucket boundaries are absolute clock times
// derived from the cutoff in 15-minute steps.
func (a *Aggregator) Detailed(r models.DateRange, grade, section string) (*models.DetailedMetrics, error) {
	records, err := a.store.AttendanceDetails(r, grade, section)
	if err != nil {
		return nil, err
	}

	labels := ArrivalBucketLabels(a.cutoff)
	buckets := make(map[string]int, len(labels))
	for _, l := range labels {
		buckets[l] = 0
	}
	genders := map[string]int{}

	for _, rec := range records {
		g := rec.Gender
		if g == "" {
			g = models.UnspecifiedGender
		}
		genders[g]++
		buckets[arrivalBucket(a.cutoff, rec.Time, labels)]++
	}

	return &models.DetailedMetrics{
		GenderDistribution: genders,
		ArrivalBuckets:     buckets,
		Count:              len(records),
	}, nil
}

// ArrivalBucketLabels builds the five histogram labels: four 15-minute
// windows from the cutoff and an open-ended tail.
func ArrivalBucketLabels(cutoff time.Time) []string {
	labels := make([]string, 0, 5)
	for i := 0; i < 4; i++ {
		from := cutoff.Add(time.Duration(i) * 15 * time.Minute)
		to := from.Add(15 * time.Minute)
		labels = append(labels, fmt.Sprintf("%s-%s", from.Format("15:04"), to.Format("15:04")))
	}
	labels = append(labels, cutoff.Add(time.Hour).Format("15:04")+"+")
	return labels
}

// arrivalBucket places a record's clock time into its histogram bucket.
// Arrivals before the cutoff count toward the earliest window.
func arrivalBucket(cutoff, ts time.Time, labels []string) string {
	arrival := ts.Hour()*3600 + ts.Minute()*60 + ts.Second()
	base := cutoff.Hour()*3600 + cutoff.Minute()*60 + cutoff.Second()
	for i := 1; i <= 4; i++ {
		if arrival < base+i*15*60 {
			return labels[i-1]
		}
	}
	return labels[4]
}
