package usecase

import "time"

func systemClock() time.Time {
	return time.Now()
}

func resolveLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
