package worklog

import (
	"math"
	"strings"
	"time"

	worklogerrors "spincraft-tracker/internal/worklog/errors"
)

const (
	DateLayout = "2006-01-02"
	timeLayout = "15:04"
	MinHours   = 0.0
	MaxHours   = 24.0
)

// ValidateHours rejects values outside [0, 24]. Out of range input is never clamped.
func ValidateHours(h float64) error {
	if math.IsNaN(h) || h < MinHours || h > MaxHours {
		return worklogerrors.ErrHoursOutOfRange
	}
	return nil
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", worklogerrors.ErrInvalidStatus
	}
	return s, nil
}

// ParseStatuses parses a list. An empty input yields nil.
func ParseStatuses(raw []string) ([]Status, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Status, 0, len(raw))
	for _, r := range raw {
		s, err := ParseStatus(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return worklogerrors.ErrInvalidDate
	}
	return nil
}

// ValidateRange checks both ends are ISO dates and start <= end.
func ValidateRange(start, end string) error {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return worklogerrors.ErrInvalidDate
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return worklogerrors.ErrInvalidDate
	}
	if s.After(e) {
		return worklogerrors.ErrInvalidRange
	}
	return nil
}

func validateClock(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := time.Parse(timeLayout, trimmed); err != nil {
		return nil, worklogerrors.ErrInvalidTime
	}
	return &trimmed, nil
}
