package catalog

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jrsteele09/hyp3-catalog/hyp3"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DateLayout is the compact date form used in granule and product names.
const DateLayout = "20060102"

var (
	timestampPattern       = regexp.MustCompile(`(\d{8})T\d{6}`)
	timestampChunkPattern  = regexp.MustCompile(`^\d{8}T\d{6}$`)
	pairedTimestampPattern = regexp.MustCompile(`(\d{8})T\d{6}[-_](\d{8})T\d{6}`)
)

// DateRange is an inclusive range of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls on a day between Start and End inclusive.
func (r DateRange) Contains(d time.Time) bool {
	day := truncateDay(d)
	return !day.Before(truncateDay(r.Start)) && !day.After(truncateDay(r.End))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	return t, err == nil
}

// ExtractAcquisitionDate returns the date of the first yyyymmddThhmmss timestamp in
// name. A timestamp that is not a calendar date counts as absent.
func ExtractAcquisitionDate(name string) (time.Time, bool) {
	m := timestampPattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	return parseDay(m[1])
}

// ProductAcquisitionDate reads the acquisition date of a product name from its
// fifth underscore-delimited field. Names without underscores carry the date as
// their second dash-delimited field.
func ProductAcquisitionDate(name string) (time.Time, error) {
	var field string
	if parts := strings.Split(name, "_"); len(parts) > 1 {
		if len(parts) < 5 {
			return time.Time{}, errors.Wrapf(apperrors.ErrInvalidArgument, "[ProductAcquisitionDate] %q has no date field", name)
		}
		field = parts[4]
	} else {
		parts = strings.Split(name, "-")
		if len(parts) < 2 {
			return time.Time{}, errors.Wrapf(apperrors.ErrInvalidArgument, "[ProductAcquisitionDate] %q has no date field", name)
		}
		field = parts[1]
	}

	if len(field) < len(DateLayout) {
		return time.Time{}, errors.Wrapf(apperrors.ErrInvalidArgument, "[ProductAcquisitionDate] %q has no date field", name)
	}
	d, ok := parseDay(field[:len(DateLayout)])
	if !ok {
		return time.Time{}, errors.Wrapf(apperrors.ErrInvalidArgument, "[ProductAcquisitionDate] %q has an invalid date", name)
	}
	return d, nil
}

// FilterByDateRange keeps the granules acquired within r. Granules without a date
// are dropped.
func FilterByDateRange(granules *GranuleSet, r DateRange) *GranuleSet {
	filtered := NewGranuleSet()
	for _, name := range granules.Names() {
		d, ok := ExtractAcquisitionDate(name)
		if !ok {
			log.Debug().Str("granule", name).Msg("no acquisition date")
			continue
		}
		if r.Contains(d) {
			id, _ := granules.JobID(name)
			filtered.Add(name, id)
		}
	}
	return filtered
}

// SortedAcquisitionDates returns the yyyymmdd acquisition dates of products in
// ascending order. Paired products, such as interferograms, contribute both their
// reference and secondary dates.
func SortedAcquisitionDates(products []hyp3.Product, paired bool) []string {
	dates := make([]string, 0, len(products))
	for _, p := range products {
		if paired {
			m := pairedTimestampPattern.FindStringSubmatch(p.Name)
			if m == nil {
				log.Warn().Str("product", p.Name).Msg("no date pair in product name")
				continue
			}
			dates = append(dates, m[1], m[2])
			continue
		}

		found := false
		for _, chunk := range strings.Split(p.Name, "_") {
			if timestampChunkPattern.MatchString(chunk) {
				dates = append(dates, chunk[:len(DateLayout)])
				found = true
				break
			}
		}
		if !found {
			log.Warn().Str("product", p.Name).Msg("no date in product name")
		}
	}
	sort.Strings(dates)
	return dates
}

// DailyOptions returns every day from the earliest to the latest of dates,
// inclusive. It is the option set of a date range selector.
func DailyOptions(dates []string) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "[DailyOptions] no dates")
	}

	var first, last time.Time
	for i, s := range dates {
		d, ok := parseDay(s)
		if !ok {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "[DailyOptions] invalid date %q", s)
		}
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}

	days := make([]time.Time, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}
