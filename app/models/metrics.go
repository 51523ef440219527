package models

// TodayMetrics reports raw counts for the current day.
type TodayMetrics struct {
	TotalToday    int `json:"total_today"`
	PunctualToday int `json:"punctual_today"`
	LateToday     int `json:"late_today"`
	AbsentToday   int `json:"absent_today"`
}

// SummaryMetrics reports percentages over a date range and group filters.
type SummaryMetrics struct {
	StudentsTotal  int     `json:"students_total"`
	RecordsTotal   int     `json:"records_total"`
	PunctualityPct float64 `json:"punctuality_pct"`
	LatePct        float64 `json:"late_pct"`
	AbsentPct      float64 `json:"absent_pct"`
}

// WeeklyMetrics is the per-day attendance percentage series, oldest day first.
type WeeklyMetrics struct {
	Labels        []string  `json:"labels"`
	AttendancePct []float64 `json:"attendance_pct"`
}

// DetailedMetrics carries the gender distribution and the arrival-time
// histogram for a filtered set of records.
type DetailedMetrics struct {
	GenderDistribution map[string]int `json:"gender_distribution"`
	ArrivalBuckets     map[string]int `json:"arrival_buckets"`
	Count              int            `json:"count"`
}
