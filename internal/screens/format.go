package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatSalary renders a salary range like "12000-15000" as "₹12k - 15k".
// Amounts use k for thousands, L for lakhs and Cr for crores.
func FormatSalary(salary string) string {
	if lo, hi, ok := strings.Cut(salary, "-"); ok {
		from, err1 := strconv.Atoi(strings.TrimSpace(lo))
		to, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 == nil && err2 == nil {
			return "₹" + compactAmount(from) + " - " + compactAmount(to)
		}
		return "₹" + salary
	}
	n, err := strconv.Atoi(strings.TrimSpace(salary))
	if err != nil {
		return "₹" + salary
	}
	return "₹" + compactAmount(n)
}

func compactAmount(n int) string {
	switch {
	case n >= 10_000_000:
		return fmt.Sprintf("%.1fCr", float64(n)/10_000_000)
	case n >= 100_000:
		return fmt.Sprintf("%.1fL", float64(n)/100_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fk", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// FormatPosted describes when a job was posted relative to now, by calendar
// day in now's location.
func FormatPosted(posted, now time.Time) string {
	p := posted.In(now.Location())
	py, pm, pd := p.Date()
	ny, nm, nd := now.Date()
	days := int(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	if days < 0 {
		days = -days
	}
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return p.Format("Jan 2")
	}
}

func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
