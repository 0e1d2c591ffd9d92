package models

import (
	"fmt"
	"time"

	"fjacquet/plannerfin/internal/dateutils"
)

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(dateutils.DateLayoutMonth, s)
	if err != nil {
		return "", fmt.Errorf("invalid month key '%s': expected YYYY-MM", s)
	}
	return MonthKeyOf(t), nil
}

// MonthKeyOf returns the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(dateutils.DateLayoutMonth))
}

// String returns the "YYYY-MM" form.
func (m MonthKey) String() string {
	return string(m)
}

// Time returns midnight UTC on the first day of the month.
func (m MonthKey) Time() (time.Time, bool) {
	t, err := time.Parse(dateutils.DateLayoutMonth, string(m))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether m is a well-formed month key.
func (m MonthKey) Valid() bool {
	_, ok := m.Time()
	return ok
}

// Previous returns the month immediately before m, or "" when m is invalid.
func (m MonthKey) Previous() MonthKey {
	t, ok := m.Time()
	if !ok {
		return ""
	}
	return MonthKeyOf(dateutils.AddMonths(t, -1))
}

// PreviousN returns the n months immediately preceding m, nearest first.
// It returns nil when m is invalid or n is not positive.
func (m MonthKey) PreviousN(n int) []MonthKey {
	t, ok := m.Time()
	if !ok || n <= 0 {
		return nil
	}
	months := make([]MonthKey, 0, n)
	for i := 1; i <= n; i++ {
		months = append(months, MonthKeyOf(dateutils.AddMonths(t, -i)))
	}
	return months
}

// FirstDay returns the first day of the month as YYYY-MM-DD.
func (m MonthKey) FirstDay() string {
	t, ok := m.Time()
	if !ok {
		return ""
	}
	return dateutils.ToISODate(t)
}

// LastDay returns the last day of the month as YYYY-MM-DD.
func (m MonthKey) LastDay() string {
	t, ok := m.Time()
	if !ok {
		return ""
	}
	return dateutils.ToISODate(dateutils.EndOfMonth(t))
}
