package feed

import (
	"fmt"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
)

// ccsTimeLayout is the CCS TIME format: RFC 3339 with millisecond precision.
const ccsTimeLayout = "2006-01-02T15:04:05.000-07:00"

// FormatTime renders an absolute timestamp in CCS TIME format.
func FormatTime(t time.Time) string {
	return t.Format(ccsTimeLayout)
}

// FormatDuration renders a duration in CCS RELTIME format: [-]H:MM:SS.mmm
// with no zero padding on the hour component.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	ms := d.Milliseconds()
	hours := ms / 3600000
	minutes := ms % 3600000 / 60000
	seconds := ms % 60000 / 1000
	millis := ms % 1000
	return fmt.Sprintf("%s%d:%02d:%02d.%03d", sign, hours, minutes, seconds, millis)
}

// ContestTime renders an instant relative to the contest start in RELTIME
// format. Instants before the start yield a negative value.
func ContestTime(contest *domain.Contest, t time.Time) string {
	return FormatDuration(t.Sub(contest.BeginAt))
}
