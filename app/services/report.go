package services

import (
	"time"

	"eduface/app/models"
)

// ReportStore is the storage surface of the report builder.
type ReportStore interface {
	Students(filters models.StudentFilters) ([]*models.Student, error)
	AttendanceDetails(r models.DateRange, grade, section string) ([]*models.AttendanceWithStudent, error)
}

// BuildReportRows produces the flat row list handed to the report renderer
// for one day: present records first (most recent arrival first), then a
// synthesized Absent row for every filtered student without a record that
// day. Absence rows are derived at query time and never written back.
// statusFilter narrows the output to one status; filtering by Absent yields
// only synthesized rows.
func BuildReportRows(store ReportStore, day time.Time, grade, section string, statusFilter models.AttendanceStatus) ([]models.ReportRow, error) {
	day = DateOf(day)

	records, err := store.AttendanceDetails(models.SingleDay(day), grade, section)
	if err != nil {
		return nil, err
	}

	rows := []models.ReportRow{}
	attended := make(map[string]bool, len(records))
	for _, rec := range records {
		attended[rec.StudentID] = true
		if statusFilter == models.Absent || (statusFilter != "" && rec.Status != statusFilter) {
			continue
		}
		rows = append(rows, models.ReportRow{
			Code:    rec.Code,
			Name:    rec.Name,
			Grade:   rec.Grade,
			Section: rec.Section,
			Status:  rec.Status,
			Time:    rec.Time.Format("15:04"),
		})
	}

	if statusFilter == "" || statusFilter == models.Absent {
		students, err := store.Students(models.StudentFilters{Grade: grade, Section: section})
		if err != nil {
			return nil, err
		}
		for _, st := range students {
			if attended[st.ID] {
				continue
			}
			rows = append(rows, models.ReportRow{
				Code:    st.Code,
				Name:    st.Name,
				Grade:   st.Grade,
				Section: st.Section,
				Status:  models.Absent,
				Time:    models.AbsentTimePlaceholder,
			})
		}
	}

	for i := range rows {
		rows[i].Sequence = i + 1
	}
	return rows, nil
}
