package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"eduface/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements StudentDirectory and AttendanceLog in memory,
// enforcing the same per-day uniqueness the database constraint provides.
type fakeStore struct {
	students map[string]*models.Student
	records  map[string]*models.Attendance // key: studentID|date
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students: map[string]*models.Student{},
		records:  map[string]*models.Attendance{},
	}
}

func (f *fakeStore) key(studentID string, day time.Time) string {
	return studentID + "|" + day.Format("2006-01-02")
}

func (f *fakeStore) StudentByCode(code string) (*models.Student, error) {
	return f.students[code], nil
}

func (f *fakeStore) CreateStudent(st *models.Student) error {
	st.ID = fmt.Sprintf("id-%d", len(f.students)+1)
	f.students[st.Code] = st
	return nil
}

func (f *fakeStore) AttendanceOn(studentID string, day time.Time) (*models.Attendance, error) {
	return f.records[f.key(studentID, day)], nil
}

func (f *fakeStore) InsertAttendanceOnce(att *models.Attendance) (bool, error) {
	k := f.key(att.StudentID, att.Date)
	if f.records[k] != nil {
		return false, nil
	}
	att.ID = fmt.Sprintf("att-%d", len(f.records)+1)
	f.records[k] = att
	return true, nil
}

func cutoffAt(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func newTestLedger(store *fakeStore) *Ledger {
	return NewLedger(store, store, cutoffAt(7, 30))
}

func TestClassify(t *testing.T) {
	l := newTestLedger(newFakeStore())

	tests := []struct {
		ts   time.Time
		want models.AttendanceStatus
	}{
		{time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), models.OnTime},
		{time.Date(2026, 3, 2, 7, 29, 59, 0, time.UTC), models.OnTime},
		{time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC), models.OnTime}, // exactly at cutoff
		{time.Date(2026, 3, 2, 7, 30, 1, 0, time.UTC), models.Late},
		{time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), models.Late},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.Classify(tt.ts), "at %s", tt.ts.Format("15:04:05"))
	}
}

func TestMarkAttendance_CreatesRecord(t *testing.T) {
	store := newFakeStore()
	store.students["alice_m"] = &models.Student{ID: "s1", Code: "alice_m", Name: "Alice"}
	l := newTestLedger(store)

	ts := time.Date(2026, 3, 2, 7, 15, 0, 0, time.UTC)
	rec, wasNew, err := l.MarkAttendance("alice_m", ts)
	require.NoError(t, err)
	assert.True(t, wasNew)
	assert.Equal(t, "s1", rec.StudentID)
	assert.Equal(t, models.OnTime, rec.Status)
	assert.Equal(t, DateOf(ts), rec.Date)
}

func TestMarkAttendance_SecondCallSameDayIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.students["alice_m"] = &models.Student{ID: "s1", Code: "alice_m"}
	l := newTestLedger(store)

	first, wasNew, err := l.MarkAttendance("alice_m", time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, wasNew)

	// later the same day, already late, must not overwrite
	second, wasNew, err := l.MarkAttendance("alice_m", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, wasNew)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.OnTime, second.Status)
}

func TestMarkAttendance_NewDayCreatesNewRecord(t *testing.T) {
	store := newFakeStore()
	store.students["alice_m"] = &models.Student{ID: "s1", Code: "alice_m"}
	l := newTestLedger(store)

	first, _, err := l.MarkAttendance("alice_m", time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, wasNew, err := l.MarkAttendance("alice_m", time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, wasNew)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMarkAttendance_LostInsertRaceReturnsWinner(t *testing.T) {
	store := newFakeStore()
	store.students["alice_m"] = &models.Student{ID: "s1", Code: "alice_m"}

	// Another writer lands between the existence check and the insert: the
	// first lookup sees nothing, the insert is rejected, the re-read sees
	// the winner's record.
	winner := &models.Attendance{
		ID:        "att-winner",
		StudentID: "s1",
		Date:      DateOf(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		Status:    models.OnTime,
	}
	attLog := &racingLog{winner: winner}
	l := NewLedger(store, attLog, cutoffAt(7, 30))

	rec, wasNew, err := l.MarkAttendance("alice_m", time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, wasNew)
	assert.Equal(t, "att-winner", rec.ID)
	assert.Equal(t, 2, attLog.lookups)
}

// racingLog reports no record on the first lookup and the winner afterwards,
// with inserts always losing.
type racingLog struct {
	winner  *models.Attendance
	lookups int
}

func (r *racingLog) AttendanceOn(studentID string, day time.Time) (*models.Attendance, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, nil
	}
	return r.winner, nil
}

func (r *racingLog) InsertAttendanceOnce(att *models.Attendance) (bool, error) {
	return false, nil
}

func TestResolveOrRegister_AutoRegisters(t *testing.T) {
	store := newFakeStore()
	l := newTestLedger(store)

	st, created, err := l.ResolveOrRegister("ghost_code")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ghost_code", st.Code)
	assert.Equal(t, "ghost_code", st.Name) // code doubles as placeholder name
}

func TestResolveOrRegister_ExistingStudent(t *testing.T) {
	store := newFakeStore()
	store.students["alice_m"] = &models.Student{ID: "s1", Code: "alice_m", Name: "Alice"}
	l := newTestLedger(store)

	st, created, err := l.ResolveOrRegister("alice_m")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Alice", st.Name)
}

func TestResolveOrRegister_LostCreationRace(t *testing.T) {
	store := newFakeStore()
	dir := &racingDirectory{winner: &models.Student{ID: "s9", Code: "alice_m", Name: "Alice"}}
	l := NewLedger(dir, store, cutoffAt(7, 30))

	st, created, err := l.ResolveOrRegister("alice_m")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "s9", st.ID)
}

// racingDirectory misses on the first lookup, fails the create, then
// returns the race winner.
type racingDirectory struct {
	winner *models.Student
	calls  int
}

func (r *racingDirectory) StudentByCode(code string) (*models.Student, error) {
	r.calls++
	if r.calls == 1 {
		return nil, nil
	}
	return r.winner, nil
}

func (r *racingDirectory) CreateStudent(st *models.Student) error {
	return errors.New("duplicate key")
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 3, 2, 23, 59, 59, 123, time.UTC)
	day := DateOf(ts)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)
}
