package schedule

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	may15 := time.Date(2024, 5, 15, 8, 0, 0, 0, time.Local)
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day, different hours", may15, time.Date(2024, 5, 15, 23, 0, 0, 0, time.Local), 0},
		{"next day", may15, time.Date(2024, 5, 16, 0, 0, 0, 0, time.Local), 1},
		{"previous day", may15, time.Date(2024, 5, 14, 23, 59, 0, 0, time.Local), -1},
		{"across leap day", time.Date(2024, 2, 28, 12, 0, 0, 0, time.Local), time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.from, tc.to); got != tc.want {
				t.Errorf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		if got := daysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("daysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	if m, ok := MinutesOfDay("09:30"); !ok || m != 570 {
		t.Errorf("MinutesOfDay(09:30) = %d, %t", m, ok)
	}
	if _, ok := MinutesOfDay("9am"); ok {
		t.Error("malformed clock string should not parse")
	}
	if FormatMinutes(570) != "09:30" {
		t.Errorf("FormatMinutes(570) = %s", FormatMinutes(570))
	}
}
