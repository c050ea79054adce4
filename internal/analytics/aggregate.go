package analytics

import (
	"math"
	"sort"

	"github.com/fadilmartias/jobtrack/internal/model"
)

// Everything in this package is a pure reduction over a materialized record
// collection. No function here can fail: empty input degrades to empty or
// zero output, so callers can recompute on every request.

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// MonthBucket is one calendar month of applications. Applied also counts
// screening, Offer also counts accepted; interview and rejected stay
// distinct. Withdrawn only shows up in Total.
type MonthBucket struct {
	Month     string `json:"month"`
	Total     int    `json:"total"`
	Applied   int    `json:"applied"`
	Interview int    `json:"interview"`
	Offer     int    `json:"offer"`
	Rejected  int    `json:"rejected"`
}

// Summary is the composite dashboard view: totals, histogram and the
// derived rates in one struct.
type Summary struct {
	Total           int            `json:"total"`
	Statuses        map[string]int `json:"statuses"`
	SuccessRate     int            `json:"success_rate"`
	InterviewRate   int            `json:"interview_rate"`
	RejectionRate   int            `json:"rejection_rate"`
	AvgResponseDays float64        `json:"avg_response_days"`
}

// StatusHistogram partitions records by status. Statuses that never appear
// are simply absent, and records with an empty status are not counted.
func StatusHistogram(apps []model.Application) map[string]int {
	hist := make(map[string]int)
	for _, app := range apps {
		if app.Details.Status == "" {
			continue
		}
		hist[app.Details.Status]++
	}
	return hist
}

// MonthlyTimeSeries groups records by the calendar month they were applied
// in and returns the most recent six buckets in chronological order.
// Records whose applied date cannot be parsed are skipped.
func MonthlyTimeSeries(apps []model.Application) []MonthBucket {
	buckets := make(map[string]*MonthBucket)
	var keys []string
	for _, app := range apps {
		date, err := model.ParseDate(app.Details.AppliedDate)
		if err != nil {
			continue
		}
		key := date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: date.Format("Jan 2006")}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.Total++
		switch app.Details.Status {
		case model.StatusApplied, model.StatusScreening:
			b.Applied++
		case model.StatusInterview:
			b.Interview++
		case model.StatusOffer, model.StatusAccepted:
			b.Offer++
		case model.StatusRejected:
			b.Rejected++
		}
	}
	sort.Strings(keys)
	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}
	out := make([]MonthBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, *buckets[key])
	}
	return out
}

// TopSkills ranks required skills by how many records list them, descending,
// and returns at most the ten most frequent. Ties keep the order in which a
// skill was first encountered.
func TopSkills(apps []model.Application) []SkillCount {
	counts := make(map[string]int)
	var order []string
	for _, app := range apps {
		for _, skill := range app.Requirements.SkillsRequired {
			if _, seen := counts[skill]; !seen {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}
	ranked := make([]SkillCount, 0, len(order))
	for _, skill := range order {
		ranked = append(ranked, SkillCount{Skill: skill, Count: counts[skill]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return ranked
}

// AverageResponseTime is the mean whole-day gap between the first two
// timeline events, over records that have at least two. Records with fewer
// events count toward neither side of the division; with no qualifying
// records at all the result is 0.
func AverageResponseTime(apps []model.Application) float64 {
	var totalDays, qualifying int
	for _, app := range apps {
		if len(app.Timeline) < 2 {
			continue
		}
		first, err := model.ParseDate(app.Timeline[0].Date)
		if err != nil {
			continue
		}
		second, err := model.ParseDate(app.Timeline[1].Date)
		if err != nil {
			continue
		}
		totalDays += int(math.Floor(second.Sub(first).Hours() / 24))
		qualifying++
	}
	if qualifying == 0 {
		return 0
	}
	return float64(totalDays) / float64(qualifying)
}

// SuccessRate is offers (offer or accepted) over total, as a rounded
// percentage. 0 for an empty collection.
func SuccessRate(apps []model.Application) int {
	hist := StatusHistogram(apps)
	return rate(hist[model.StatusOffer]+hist[model.StatusAccepted], len(apps))
}

// InterviewRate is interviews over total, as a rounded percentage.
func InterviewRate(apps []model.Application) int {
	return rate(StatusHistogram(apps)[model.StatusInterview], len(apps))
}

// RejectionRate is rejections over total, as a rounded percentage.
func RejectionRate(apps []model.Application) int {
	return rate(StatusHistogram(apps)[model.StatusRejected], len(apps))
}

func rate(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Summarize builds the composite dashboard stats in one pass over the
// collection.
func Summarize(apps []model.Application) Summary {
	hist := StatusHistogram(apps)
	return Summary{
		Total:           len(apps),
		Statuses:        hist,
		SuccessRate:     rate(hist[model.StatusOffer]+hist[model.StatusAccepted], len(apps)),
		InterviewRate:   rate(hist[model.StatusInterview], len(apps)),
		RejectionRate:   rate(hist[model.StatusRejected], len(apps)),
		AvgResponseDays: AverageResponseTime(apps),
	}
}
