package services

import (
	"fmt"
	"strings"
)

// WeekHours sums the courier's scheduled hours over the week. Cells that fail
// to parse are skipped rather than failing the whole report.
func WeekHours(row ScheduleRow) float64 {
	var total float64
	for _, shift := range row.Shifts {
		h, err := ShiftHours(shift)
		if err != nil {
			continue
		}
		total += h
	}
	return total
}

// WeekShifts counts scheduled (non day-off) shifts.
func WeekShifts(row ScheduleRow) int {
	n := 0
	for _, shift := range row.Shifts {
		if !IsDayOff(shift) {
			n++
		}
	}
	return n
}

// BuildCourierPayroll renders the payroll summary for one courier.
func BuildCourierPayroll(row ScheduleRow, hourlyRate int64) string {
	hours := WeekHours(row)
	amount := int64(hours * float64(hourlyRate))
	return fmt.Sprintf("💰 Зарплата за неделю\n\nСмен: %d\nЧасов: %.1f\nСтавка: %d ₽/ч\nИтого: %d ₽",
		WeekShifts(row), hours, hourlyRate, amount)
}

// BuildBranchPayroll renders the payroll report for every courier of a branch,
// one line per courier plus a branch total.
func BuildBranchPayroll(rows []ScheduleRow, branchTitle string, hourlyRate int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Зарплатный отчёт — %s\n", branchTitle)
	var totalHours float64
	var totalAmount int64
	for _, row := range rows {
		hours := WeekHours(row)
		amount := int64(hours * float64(hourlyRate))
		totalHours += hours
		totalAmount += amount
		fmt.Fprintf(&b, "\n%s — %.1f ч, %d ₽", row.FullName, hours, amount)
	}
	if len(rows) == 0 {
		b.WriteString("\nНет курьеров в расписании.")
		return b.String()
	}
	fmt.Fprintf(&b, "\n\nИтого: %.1f ч, %d ₽", totalHours, totalAmount)
	return b.String()
}
