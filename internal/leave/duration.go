package leave

import (
	"time"

	leaveerrors "github.com/Anugo1/Workforce-management-system/internal/leave/errors"
)

const dateLayout = "2006-01-02"

// ParseDate membaca tanggal kalender (tanpa komponen jam) dalam format YYYY-MM-DD
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// DurationDays menghitung rentang hari inklusif antara dua tanggal kalender.
// Cuti satu hari = 1, cuti hari N sampai N+1 = 2. Minimal selalu 1.
func DurationDays(startDate, endDate time.Time) int {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// todayUTC mengembalikan awal hari ini (UTC) untuk pembanding start_date
func todayUTC() time.Time {
	return truncateToDay(time.Now())
}
