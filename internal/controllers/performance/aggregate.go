package performanceController

import (
	"fmt"
	"sort"
	"time"

	. "mantis/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// Ranges narrower than this many calendar days are bucketed per weekday;
	// anything wider collapses to months so wide reports stay readable.
	monthlyModeThresholdDays = 90

	// Fixed working-days-per-month assumption used by monthly denominators.
	// Deliberately not computed from the actual calendar.
	workingDaysPerMonth = 22
)

type BucketMode int

const (
	BucketModeDaily BucketMode = iota
	BucketModeMonthly
)

type bucket struct {
	Key   string
	Label string
}

// GroupInfo identifies one aggregation group. Key must be unique per group;
// the descriptive fields are echoed on every output row.
type GroupInfo struct {
	Key         string
	MachineID   string
	MachineName string
	Section     string
	Unit        string
}

// GroupFunc extracts the aggregation group of a machine. The same engine
// serves every grouping variant; only this extractor changes.
type GroupFunc func(m Machine) GroupInfo

func GroupBySectionUnit(m Machine) GroupInfo {
	return GroupInfo{Key: m.Section + "|" + m.Unit, Section: m.Section, Unit: m.Unit}
}

func GroupByMachine(m Machine) GroupInfo {
	return GroupInfo{
		Key:         m.ID,
		MachineID:   m.ID,
		MachineName: m.Name,
		Section:     m.Section,
		Unit:        m.Unit,
	}
}

func GroupBySection(m Machine) GroupInfo {
	return GroupInfo{Key: m.Section, Section: m.Section}
}

func GroupByUnit(m Machine) GroupInfo {
	return GroupInfo{Key: m.Unit, Unit: m.Unit}
}

type SummaryRow struct {
	DataLabel        string `json:"dataLabel"`
	MachineID        string `json:"machineId,omitempty"`
	MachineName      string `json:"machineName,omitempty"`
	Section          string `json:"section,omitempty"`
	Unit             string `json:"unit,omitempty"`
	ReportedDays     int    `json:"reportedDays"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	Percentage       string `json:"percentage"`
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func daysBetween(from, to time.Time) int {
	return int(dayOf(to).Sub(dayOf(from)).Hours() / 24)
}

func modeFor(from, to time.Time) BucketMode {
	if daysBetween(from, to) < monthlyModeThresholdDays {
		return BucketModeDaily
	}
	return BucketModeMonthly
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// dailyBuckets enumerates every weekday in [from, to]. Weekends are not part
// of the label set at all.
func dailyBuckets(from, to time.Time) []bucket {
	var buckets []bucket
	for day := dayOf(from); !day.After(dayOf(to)); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		buckets = append(buckets, bucket{
			Key:   day.Format("2006-01-02"),
			Label: day.Format("02 Jan 2006"),
		})
	}
	return buckets
}

// monthlyBuckets enumerates every calendar month from from's month through
// to's month inclusive.
func monthlyBuckets(from, to time.Time) []bucket {
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.Local)
	var buckets []bucket
	for cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.Local); !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		buckets = append(buckets, bucket{
			Key:   fmt.Sprintf("%d-%d", cur.Year(), int(cur.Month())),
			Label: cur.Format("January 2006"),
		})
	}
	return buckets
}

func bucketKeyFor(day time.Time, mode BucketMode) string {
	if mode == BucketModeDaily {
		return day.Format("2006-01-02")
	}
	return fmt.Sprintf("%d-%d", day.Year(), int(day.Month()))
}

// formatPercentage renders numerator/denominator as a 2-decimal percentage
// string. A zero denominator yields "0.00%", never a division error.
func formatPercentage(numerator, denominator int) string {
	if denominator == 0 {
		return "0.00%"
	}
	pct := decimal.NewFromInt(int64(numerator) * 100).
		Div(decimal.NewFromInt(int64(denominator)))
	return pct.StringFixed(2) + "%"
}

type groupAgg struct {
	info         GroupInfo
	machineCount int
	// seen[bucketKey] dedups this group's submissions per bucket. Daily
	// buckets key by machine (one count per machine per day); monthly buckets
	// key by machine and day, so every reported day counts toward the fixed
	// 22-day denominator.
	seen map[string]map[string]struct{}
}

// aggregate turns the machine roster plus raw submissions into one row per
// (bucket, group), covering every bucket in the requested range even when no
// one reported.
func aggregate(
	machines []Machine,
	records []DailyMaintenance,
	group GroupFunc,
	from, to time.Time,
) []SummaryRow {
	fromDay, toDay := dayOf(from), dayOf(to)
	mode := modeFor(fromDay, toDay)

	var buckets []bucket
	if mode == BucketModeDaily {
		buckets = dailyBuckets(fromDay, toDay)
	} else {
		buckets = monthlyBuckets(fromDay, toDay)
	}

	groups := make(map[string]*groupAgg)
	machineGroup := make(map[string]string, len(machines))
	var order []string
	for _, m := range machines {
		info := group(m)
		g, ok := groups[info.Key]
		if !ok {
			g = &groupAgg{info: info, seen: make(map[string]map[string]struct{})}
			groups[info.Key] = g
			order = append(order, info.Key)
		}
		g.machineCount++
		machineGroup[m.ID] = info.Key
	}
	sort.Strings(order)

	for _, rec := range records {
		groupKey, ok := machineGroup[rec.MachineID]
		if !ok {
			// Submission for a machine no longer on the roster.
			continue
		}

		day := rec.Day()
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		if mode == BucketModeDaily && isWeekend(day) {
			continue
		}

		g := groups[groupKey]
		bucketKey := bucketKeyFor(day, mode)
		if g.seen[bucketKey] == nil {
			g.seen[bucketKey] = make(map[string]struct{})
		}
		seenKey := rec.MachineID
		if mode == BucketModeMonthly {
			seenKey = rec.MachineID + "|" + day.Format("2006-01-02")
		}
		g.seen[bucketKey][seenKey] = struct{}{}
	}

	rows := make([]SummaryRow, 0, len(buckets)*len(order))
	for _, b := range buckets {
		for _, key := range order {
			g := groups[key]

			denominator := g.machineCount
			if mode == BucketModeMonthly {
				denominator = g.machineCount * workingDaysPerMonth
			}
			numerator := len(g.seen[b.Key])

			rows = append(rows, SummaryRow{
				DataLabel:        b.Label,
				MachineID:        g.info.MachineID,
				MachineName:      g.info.MachineName,
				Section:          g.info.Section,
				Unit:             g.info.Unit,
				ReportedDays:     numerator,
				TotalWorkingDays: denominator,
				Percentage:       formatPercentage(numerator, denominator),
			})
		}
	}
	return rows
}
