package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// BusinessCalendar answers whether a sales date is a regular business day,
// holidays included, using scmhub/calendar.
type BusinessCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// Region to MIC code (ISO 10383). The exchange calendars carry the public
// holiday schedule we want for cafe locations in the same country.
var regionMICs = map[string]string{
	"us": "xnys",
	"uk": "xlon",
	"fr": "xpar",
	"de": "xfra",
	"nl": "xams",
	"be": "xbru",
	"it": "xmil",
	"es": "xmad",
	"se": "xsto",
	"dk": "xcse",
	"fi": "xhel",
	"at": "xwbo",
	"ch": "xswx",
	"ca": "xtse",
	"jp": "xtks",
	"hk": "xhkg",
	"au": "xasx",
	"kr": "xkrx",
}

// -----------------------------------------------------------------------------

func GetBusinessCalendar(region string) *BusinessCalendar {
	mic, ok := regionMICs[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		mic = "xnys"
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for region '%s'. Using simple fallback (Mon-Fri).", region)
		return &BusinessCalendar{Fallback: true, Timezone: time.UTC}
	}

	return &BusinessCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (bc *BusinessCalendar) IsBusinessDay(date time.Time) bool {
	if bc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return bc.Calendar.IsBusinessDay(date)
}
