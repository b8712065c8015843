package services

import (
	"strings"
	"testing"
)

func weekRow() ScheduleRow {
	return ScheduleRow{
		FullName: "Иван Петров",
		Branch:   "surgut_1",
		Shifts:   [7]string{"10:00-18:00", "10:00-18:00", "-", "10:00-18:00", "10:00-18:00", "-", "-"},
	}
}

func TestWeekHours(t *testing.T) {
	if got := WeekHours(weekRow()); got != 32 {
		t.Errorf("WeekHours = %v, want 32", got)
	}
	// Unparseable cells are skipped, not fatal.
	row := weekRow()
	row.Shifts[5] = "garbage"
	if got := WeekHours(row); got != 32 {
		t.Errorf("WeekHours with bad cell = %v, want 32", got)
	}
}

func TestWeekShifts(t *testing.T) {
	if got := WeekShifts(weekRow()); got != 4 {
		t.Errorf("WeekShifts = %d, want 4", got)
	}
	if got := WeekShifts(ScheduleRow{}); got != 0 {
		t.Errorf("WeekShifts(empty) = %d, want 0", got)
	}
}

func TestBuildCourierPayroll(t *testing.T) {
	text := BuildCourierPayroll(weekRow(), 250)
	for _, want := range []string{"Смен: 4", "Часов: 32.0", "250", "8000"} {
		if !strings.Contains(text, want) {
			t.Errorf("payroll missing %q: %s", want, text)
		}
	}
}

func TestBuildBranchPayroll(t *testing.T) {
	rows := []ScheduleRow{
		weekRow(),
		{FullName: "Пётр Иванов", Branch: "surgut_1", Shifts: [7]string{"10:00-18:00", "", "", "", "", "", ""}},
	}
	text := BuildBranchPayroll(rows, "Сургут-1", 250)
	for _, want := range []string{"Сургут-1", "Иван Петров", "Пётр Иванов", "Итого: 40.0 ч, 10000 ₽"} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q: %s", want, text)
		}
	}
}

func TestBuildBranchPayrollEmpty(t *testing.T) {
	text := BuildBranchPayroll(nil, "Сургут-3", 250)
	if !strings.Contains(text, "Нет курьеров") {
		t.Errorf("empty branch report: %s", text)
	}
}
