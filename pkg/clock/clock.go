// Package clock provides the settable device clock and uptime counter used
// by "clock set", "show clock" and "show uptime".
package clock

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Year bounds accepted by "clock set".
const (
	MinYear = 1993
	MaxYear = 2035
)

var months = []string{
	"January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December",
}

// Clock tracks boot time and an optional operator-set wall clock. Once set,
// the clock advances from the set point at real-time speed.
type Clock struct {
	Model string

	start  time.Time
	now    func() time.Time
	offset time.Duration
	set    bool
}

// New returns a clock that starts counting uptime now.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource returns a clock that reads the current time from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{Model: "PNF", start: now(), now: now}
}

// Setting is a parsed "clock set" request.
type Setting struct {
	Time  string
	Day   int
	Month string
	Year  int
}

func (s Setting) String() string {
	return fmt.Sprintf("%s %d %s %d", s.Time, s.Day, s.Month, s.Year)
}

// ParseSet parses the arguments following "clock", i.e.
// "set <hh:mm:ss> <day> <Month> <year>".
func ParseSet(args []string) (Setting, error) {
	if len(args) < 5 {
		return Setting{}, errors.New("Incomplete command. Usage: clock set <hh:mm:ss> <day> <month> <year>")
	}
	t := args[1]
	if strings.Count(t, ":") != 2 {
		return Setting{}, errors.New("Invalid time format. Expected hh:mm:ss.")
	}
	day, err := strconv.Atoi(args[2])
	if err != nil || day < 1 || day > 31 {
		return Setting{}, errors.New("Invalid day. Expected a number between 1 and 31.")
	}
	month := args[3]
	if !slices.Contains(months, month) {
		return Setting{}, errors.New("Invalid month. Expected a valid month name.")
	}
	year, err := strconv.Atoi(args[4])
	if err != nil || year < MinYear || year > MaxYear {
		return Setting{}, fmt.Errorf("Invalid year. Expected a number between %d and %d.", MinYear, MaxYear)
	}
	return Setting{Time: t, Day: day, Month: month, Year: year}, nil
}

// DaysIn returns the number of days in month. February has 29 days in
// every year divisible by four.
func DaysIn(month string, year int) int {
	switch month {
	case "February":
		if year%4 == 0 {
			return 29
		}
		return 28
	case "April", "June", "September", "November":
		return 30
	}
	return 31
}

func parseHMS(t string) (h, m, s int, err error) {
	parts := strings.Split(t, ":")
	if len(parts) != 3 {
		return 0, 0, 0, errors.New("Invalid time format. Expected HH:MM:SS")
	}
	if h, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, errors.New("Invalid hours")
	}
	if m, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, errors.New("Invalid minutes")
	}
	if s, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, errors.New("Invalid seconds")
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 || s < 0 || s >= 60 {
		return 0, 0, 0, errors.New("Invalid time values")
	}
	return h, m, s, nil
}

// Set applies a parsed setting. The clock is unchanged on error.
func (c *Clock) Set(s Setting) error {
	h, m, sec, err := parseHMS(s.Time)
	if err != nil {
		return err
	}
	if s.Day < 1 || s.Day > DaysIn(s.Month, s.Year) {
		return fmt.Errorf("Invalid day %d for month %s", s.Day, s.Month)
	}
	idx := slices.Index(months, s.Month)
	if idx < 0 {
		return errors.New("Invalid month. Expected a valid month name.")
	}
	now := c.now()
	target := time.Date(s.Year, time.Month(idx+1), s.Day, h, m, sec, 0, now.Location())
	c.offset = target.Sub(now)
	c.set = true
	return nil
}

// Now returns the device time.
func (c *Clock) Now() time.Time {
	now := c.now()
	if c.set {
		return now.Add(c.offset)
	}
	return now
}

// IsSet reports whether the clock was set by the operator.
func (c *Clock) IsSet() bool { return c.set }

// Uptime returns the time since the clock was created.
func (c *Clock) Uptime() time.Duration {
	return c.now().Sub(c.start)
}

// FormatNow renders the device time as "Current clock: 02 January 2006 15:04:05".
func (c *Clock) FormatNow() string {
	return "Current clock: " + c.Now().Format("02 January 2006 15:04:05")
}

// FormatUptime renders the uptime line of "show uptime" and "show version".
func (c *Clock) FormatUptime() string {
	total := int64(c.Uptime() / time.Second)
	return fmt.Sprintf("%s uptime is %d hours, %d minutes, %d seconds",
		c.Model, total/3600, (total%3600)/60, total%60)
}
