package id

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// UUID generates a UUID v4 (random).
// Returns a string in the format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
func UUID() string {
	return uuid.NewString()
}

// EventID generates a time-ordered UUID v7.
// Falls back to a v4 UUID if the v7 generator fails, which only happens when
// the system random source is broken.
func EventID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// EventTime extracts the timestamp embedded in an EventID.
func EventTime(s string) (time.Time, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if u.Version() != 7 {
		return time.Time{}, &VersionError{Got: int(u.Version()), Want: 7}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}

// VersionError is returned by EventTime for ids that are not UUID v7.
type VersionError struct {
	Got  int
	Want int
}

func (e *VersionError) Error() string {
	return "id: unexpected uuid version " + strconv.Itoa(e.Got) + ", want " + strconv.Itoa(e.Want)
}
