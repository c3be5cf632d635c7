package auth

import "time"

// IsWithinThresholdPeriod reports whether t falls inside the window of the
// given duration pattern ending at now. Callers pass their own clock so the
// window moves with an injected clock.
func IsWithinThresholdPeriod(now, t time.Time, pattern string) (bool, error) {
	duration, err := time.ParseDuration(pattern)
	if err != nil {
		return false, err
	}

	threshold := now.Add(-duration)
	if t.After(threshold) {
		return true, nil
	}

	return false, nil
}

// IsOutsideThresholdPeriod is the negation of IsWithinThresholdPeriod
func IsOutsideThresholdPeriod(now, t time.Time, pattern string) (bool, error) {
	valid, err := IsWithinThresholdPeriod(now, t, pattern)
	if err != nil {
		return false, err
	}

	return !valid, nil
}
