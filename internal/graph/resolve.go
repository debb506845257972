package graph

import (
	"strconv"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

// now is a hook so tests can pin the clock behind relative dates.
var now = time.Now

// Resolve turns a user-facing token into a node handle. The order is
// fixed: absolute dates first, then the relative date keywords, then
// numeric handles, then aliases. A numeric token never reaches alias
// lookup, so a purely numeric alias cannot be resolved by name here;
// ResolveHandleOrAlias is the alias-first path for call sites that
// accept no dates.
func (g *Graph) Resolve(token string) (int, error) {
	if key, ok := CanonicalDate(token); ok {
		return g.DateHandle(key)
	}
	if key, ok := RelativeDate(token); ok {
		return g.DateHandle(key)
	}
	if handle, err := strconv.Atoi(token); err == nil && handle >= 0 {
		if !g.Live(handle) {
			return 0, &InvalidHandleError{Handle: handle}
		}
		return handle, nil
	}
	if handle, ok := g.Aliases[token]; ok {
		return handle, nil
	}
	return 0, &InvalidAliasError{Alias: token}
}

// ResolveHandleOrAlias resolves tokens where only handles and aliases
// are legal. Aliases win here, numeric ones included.
func (g *Graph) ResolveHandleOrAlias(token string) (int, error) {
	if handle, ok := g.Aliases[token]; ok {
		return handle, nil
	}
	handle, err := strconv.Atoi(token)
	if err != nil || handle < 0 {
		return 0, &MalformedHandleError{Token: token}
	}
	if !g.Live(handle) {
		return 0, &InvalidHandleError{Handle: handle}
	}
	return handle, nil
}

// ResolveAssumeDate resolves a token the caller has flagged as a
// date, accepting the extended date forms.
func (g *Graph) ResolveAssumeDate(token string) (int, error) {
	key, err := ParseDateExtended(token)
	if err != nil {
		return 0, err
	}
	return g.DateHandle(key)
}

// DateHandle looks a canonical date key up in the date table.
func (g *Graph) DateHandle(key string) (int, error) {
	if h, ok := g.Dates[key]; ok {
		return h, nil
	}
	return 0, &InvalidDateError{Date: key}
}

// CanonicalDate reports whether token matches the digits-digits-digits
// date grammar and names a real calendar day, returning the
// zero-padded YYYY-MM-DD key.
func CanonicalDate(token string) (string, bool) {
	parts := strings.Split(token, "-")
	if len(parts) != 3 {
		return "", false
	}
	var nums [3]int
	for i, p := range parts {
		if p == "" {
			return "", false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return "", false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		nums[i] = n
	}
	return canonicalYMD(nums[0], nums[1], nums[2])
}

// canonicalYMD validates by round-trip: time.Date normalizes overflow,
// so any drift means the triple was not a real day.
func canonicalYMD(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(dateKeyLayout), true
}

// RelativeDate maps the relative keywords onto concrete canonical
// keys, day granularity, process-local clock.
func RelativeDate(token string) (string, bool) {
	t := now()
	switch token {
	case "today":
	case "tomorrow":
		t = t.AddDate(0, 0, 1)
	case "yesterday":
		t = t.AddDate(0, 0, -1)
	default:
		return "", false
	}
	return t.Format(dateKeyLayout), true
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseDateExtended reads the richer date forms accepted where a date
// is known to be intended: the plain grammar, the relative keywords, a
// bare month name (first of that month), a bare day of the current
// month, and "jan 15" / "15 jan" / "jan 15 2027" combinations.
func ParseDateExtended(token string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if key, ok := CanonicalDate(t); ok {
		return key, nil
	}
	if key, ok := RelativeDate(t); ok {
		return key, nil
	}
	localNow := now()
	if m, ok := monthNames[t]; ok {
		return time.Date(localNow.Year(), m, 1, 0, 0, 0, 0, time.UTC).Format(dateKeyLayout), nil
	}
	if d, err := strconv.Atoi(t); err == nil {
		if key, ok := canonicalYMD(localNow.Year(), int(localNow.Month()), d); ok {
			return key, nil
		}
		return "", &MalformedDateError{Token: token}
	}

	fields := strings.Fields(t)
	if len(fields) != 2 && len(fields) != 3 {
		return "", &MalformedDateError{Token: token}
	}
	year := localNow.Year()
	if len(fields) == 3 {
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return "", &MalformedDateError{Token: token}
		}
		year = y
	}
	var month time.Month
	var dayField string
	if m, ok := monthNames[fields[0]]; ok {
		month, dayField = m, fields[1]
	} else if m, ok := monthNames[fields[1]]; ok {
		month, dayField = m, fields[0]
	} else {
		return "", &MalformedDateError{Token: token}
	}
	day, err := strconv.Atoi(dayField)
	if err != nil {
		return "", &MalformedDateError{Token: token}
	}
	if key, ok := canonicalYMD(year, int(month), day); ok {
		return key, nil
	}
	return "", &MalformedDateError{Token: token}
}
