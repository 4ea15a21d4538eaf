package core

import "time"

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthNamePT returns the Portuguese name of a month (1-12).
func MonthNamePT(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// PreviousMonth steps one month back from (year, month).
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// FormatDateBR renders a date as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// ParseDateBR parses a dd/mm/yyyy string; failures map to ErrInvalidDate.
func ParseDateBR(s string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// SafeNextMonth returns the same day one month ahead, clamping the day to
// the target month's length (Jan 31 -> Feb 28/29).
func SafeNextMonth(t time.Time) time.Time {
	year, month := t.Year(), int(t.Month())
	if month == 12 {
		year, month = year+1, 1
	} else {
		month++
	}
	day := t.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
