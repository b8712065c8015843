package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v5"
)

// ScheduleRow is one courier's week from the schedule sheet.
// Shifts are Mon..Sun, each either a "10:00-18:00" range or empty/"-" for a
// day off.
type ScheduleRow struct {
	FullName string
	Branch   string
	Shifts   [7]string
}

var WeekdayShort = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// FetchSchedule downloads the published CSV export of the weekly schedule
// sheet and parses it. Transient fetch errors are retried.
func FetchSchedule(ctx context.Context, url string) ([]ScheduleRow, error) {
	if url == "" {
		return nil, fmt.Errorf("FetchSchedule: sheet url not configured")
	}
	var rows []ScheduleRow
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
	)
	err := r.Do(func() error {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("sheet returned %s", resp.Status)
		}
		rows, err = ParseSchedule(resp.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("FetchSchedule: %w", err)
	}
	return rows, nil
}

// ParseSchedule reads the sheet CSV. Expected columns: full name, branch id,
// then up to seven day cells (Mon..Sun). The header row is skipped when the
// first cell is not a name-looking value ("ФИО" etc.).
func ParseSchedule(r io.Reader) ([]ScheduleRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // sheets pad rows unevenly

	var rows []ScheduleRow
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ParseSchedule: %w", err)
		}
		if first {
			first = false
			if isScheduleHeader(rec) {
				continue
			}
		}
		if len(rec) < 2 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row := ScheduleRow{
			FullName: strings.TrimSpace(rec[0]),
			Branch:   strings.TrimSpace(rec[1]),
		}
		for i := 0; i < 7 && i+2 < len(rec); i++ {
			row.Shifts[i] = strings.TrimSpace(rec[i+2])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isScheduleHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	head := strings.ToLower(strings.TrimSpace(rec[0]))
	return head == "фио" || head == "имя" || head == "name"
}

// FindScheduleRow matches a courier by full name, case-insensitively.
func FindScheduleRow(rows []ScheduleRow, fullName string) *ScheduleRow {
	want := strings.ToLower(strings.TrimSpace(fullName))
	for i := range rows {
		if strings.ToLower(rows[i].FullName) == want {
			return &rows[i]
		}
	}
	return nil
}

// BranchScheduleRows filters the sheet down to one branch.
func BranchScheduleRows(rows []ScheduleRow, branch string) []ScheduleRow {
	var out []ScheduleRow
	for _, row := range rows {
		if row.Branch == branch {
			out = append(out, row)
		}
	}
	return out
}

// IsDayOff reports whether a shift cell means no shift.
func IsDayOff(shift string) bool {
	s := strings.TrimSpace(shift)
	return s == "" || s == "-" || strings.EqualFold(s, "вых")
}

// ShiftHours returns the duration of a "10:00-18:00" shift cell in hours.
// Overnight shifts ("22:00-06:00") wrap past midnight. Day-off cells are 0.
func ShiftHours(shift string) (float64, error) {
	if IsDayOff(shift) {
		return 0, nil
	}
	from, to, ok := strings.Cut(strings.TrimSpace(shift), "-")
	if !ok {
		return 0, fmt.Errorf("ShiftHours: bad shift %q", shift)
	}
	start, err := parseClock(from)
	if err != nil {
		return 0, fmt.Errorf("ShiftHours: %w", err)
	}
	end, err := parseClock(to)
	if err != nil {
		return 0, fmt.Errorf("ShiftHours: %w", err)
	}
	minutes := end - start
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60, nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// RenderWeek formats one courier's week for the chat.
func RenderWeek(row ScheduleRow) string {
	var b strings.Builder
	b.WriteString("📅 Расписание на неделю\n")
	for i, shift := range row.Shifts {
		b.WriteString("\n")
		b.WriteString(WeekdayShort[i])
		b.WriteString(": ")
		if IsDayOff(shift) {
			b.WriteString("выходной")
		} else {
			b.WriteString(shift)
		}
	}
	return b.String()
}
