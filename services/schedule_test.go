package services

import (
	"strings"
	"testing"
)

func TestShiftHours(t *testing.T) {
	tests := []struct {
		shift   string
		want    float64
		wantErr bool
	}{
		{"10:00-18:00", 8, false},
		{"09:30-18:00", 8.5, false},
		{"22:00-06:00", 8, false}, // overnight wraps past midnight
		{"10:00-10:00", 24, false},
		{"-", 0, false},
		{"", 0, false},
		{"вых", 0, false},
		{"10:00", 0, true},
		{"10:00-99:00", 0, true},
		{"abc-def", 0, true},
	}
	for _, tt := range tests {
		got, err := ShiftHours(tt.shift)
		if (err != nil) != tt.wantErr {
			t.Errorf("ShiftHours(%q) error = %v, wantErr %v", tt.shift, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ShiftHours(%q) = %v, want %v", tt.shift, got, tt.want)
		}
	}
}

const sampleCSV = `ФИО,Филиал,Пн,Вт,Ср,Чт,Пт,Сб,Вс
Иван Петров,surgut_1,10:00-18:00,10:00-18:00,-,10:00-18:00,10:00-18:00,-,-
Анна Смирнова,surgut_2,12:00-20:00,-,12:00-20:00,-,12:00-20:00,12:00-20:00,-
Пётр Иванов,surgut_1,-,-,10:00-22:00,10:00-22:00,-,-,10:00-22:00
`

func TestParseSchedule(t *testing.T) {
	rows, err := ParseSchedule(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (header skipped)", len(rows))
	}
	if rows[0].FullName != "Иван Петров" || rows[0].Branch != "surgut_1" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].Shifts[0] != "10:00-18:00" || rows[0].Shifts[2] != "-" {
		t.Errorf("row 0 shifts = %v", rows[0].Shifts)
	}
}

func TestParseScheduleRaggedRows(t *testing.T) {
	csv := "ФИО,Филиал,Пн\nИван Петров,surgut_1\n,,\n"
	rows, err := ParseSchedule(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (blank name skipped)", len(rows))
	}
	for _, s := range rows[0].Shifts {
		if s != "" {
			t.Errorf("missing cells should stay empty, got %q", s)
		}
	}
}

func TestFindScheduleRow(t *testing.T) {
	rows, _ := ParseSchedule(strings.NewReader(sampleCSV))
	if row := FindScheduleRow(rows, "иван петров"); row == nil {
		t.Error("lookup should be case-insensitive")
	}
	if row := FindScheduleRow(rows, "  Анна Смирнова "); row == nil {
		t.Error("lookup should trim spaces")
	}
	if row := FindScheduleRow(rows, "Нет Такого"); row != nil {
		t.Errorf("unknown courier should be nil, got %+v", row)
	}
}

func TestBranchScheduleRows(t *testing.T) {
	rows, _ := ParseSchedule(strings.NewReader(sampleCSV))
	got := BranchScheduleRows(rows, "surgut_1")
	if len(got) != 2 {
		t.Errorf("surgut_1 rows = %d, want 2", len(got))
	}
	if len(BranchScheduleRows(rows, "surgut_3")) != 0 {
		t.Error("empty branch should have no rows")
	}
}

func TestRenderWeek(t *testing.T) {
	rows, _ := ParseSchedule(strings.NewReader(sampleCSV))
	text := RenderWeek(rows[0])
	if !strings.Contains(text, "Пн: 10:00-18:00") {
		t.Errorf("missing Monday shift: %s", text)
	}
	if !strings.Contains(text, "Ср: выходной") {
		t.Errorf("missing day off: %s", text)
	}
}
