package analytics

import (
	"fmt"
	"testing"

	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApp(status, appliedDate string, skills ...string) model.Application {
	var app model.Application
	app.Company.Name = "Acme"
	app.Job.Title = "Backend Engineer"
	app.Details.Status = status
	app.Details.AppliedDate = appliedDate
	app.Requirements.SkillsRequired = skills
	return app
}

func TestStatusHistogram(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusApplied, "2025-01-10"),
		makeApp(model.StatusApplied, "2025-01-11"),
		makeApp(model.StatusInterview, "2025-02-01"),
		makeApp(model.StatusRejected, "2025-02-02"),
		makeApp("", "2025-02-03"), // no status, not counted
	}

	hist := StatusHistogram(apps)

	assert.Equal(t, 2, hist[model.StatusApplied])
	assert.Equal(t, 1, hist[model.StatusInterview])
	assert.Equal(t, 1, hist[model.StatusRejected])
	assert.NotContains(t, hist, model.StatusOffer, "absent statuses must be absent, not zero")

	sum := 0
	for _, n := range hist {
		sum += n
	}
	assert.Equal(t, 4, sum, "histogram must sum to records with a non-empty status")
}

func TestStatusHistogramEmpty(t *testing.T) {
	assert.Empty(t, StatusHistogram(nil))
}

func TestMonthlyTimeSeriesChronologicalOrder(t *testing.T) {
	// Fetch order deliberately scrambled: grouping must not depend on it.
	apps := []model.Application{
		makeApp(model.StatusInterview, "2025-03-05"),
		makeApp(model.StatusApplied, "2025-01-12"),
		makeApp(model.StatusOffer, "2025-03-20"),
		makeApp(model.StatusScreening, "2025-02-01"),
		makeApp(model.StatusAccepted, "2025-01-30"),
		makeApp(model.StatusRejected, "2025-02-14"),
	}

	series := MonthlyTimeSeries(apps)

	require.Len(t, series, 3)
	assert.Equal(t, "Jan 2025", series[0].Month)
	assert.Equal(t, "Feb 2025", series[1].Month)
	assert.Equal(t, "Mar 2025", series[2].Month)

	// applied+screening collapse, offer+accepted collapse.
	assert.Equal(t, 2, series[0].Total)
	assert.Equal(t, 1, series[0].Applied)
	assert.Equal(t, 1, series[0].Offer)
	assert.Equal(t, 1, series[1].Applied)
	assert.Equal(t, 1, series[1].Rejected)
	assert.Equal(t, 1, series[2].Interview)
	assert.Equal(t, 1, series[2].Offer)
}

func TestMonthlyTimeSeriesKeepsLastSixMonths(t *testing.T) {
	var apps []model.Application
	for month := 1; month <= 9; month++ {
		apps = append(apps, makeApp(model.StatusApplied, fmt.Sprintf("2025-%02d-15", month)))
	}

	series := MonthlyTimeSeries(apps)

	require.Len(t, series, 6)
	assert.Equal(t, "Apr 2025", series[0].Month)
	assert.Equal(t, "Sep 2025", series[5].Month)
}

func TestMonthlyTimeSeriesSkipsUnparsableDates(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusApplied, "not-a-date"),
		makeApp(model.StatusApplied, ""),
		makeApp(model.StatusApplied, "2025-06-01"),
	}

	series := MonthlyTimeSeries(apps)

	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].Total)
}

func TestTopSkillsRanking(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusApplied, "2025-01-01", "go", "postgres", "docker"),
		makeApp(model.StatusApplied, "2025-01-02", "go", "kubernetes"),
		makeApp(model.StatusApplied, "2025-01-03", "go", "postgres"),
	}

	ranked := TopSkills(apps)

	require.Len(t, ranked, 4)
	assert.Equal(t, SkillCount{Skill: "go", Count: 3}, ranked[0])
	assert.Equal(t, SkillCount{Skill: "postgres", Count: 2}, ranked[1])
	// docker and kubernetes tie at 1; docker was seen first.
	assert.Equal(t, "docker", ranked[2].Skill)
	assert.Equal(t, "kubernetes", ranked[3].Skill)

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i].Count, ranked[i-1].Count, "counts must be non-increasing")
	}
}

func TestTopSkillsCapsAtTen(t *testing.T) {
	var apps []model.Application
	for i := 0; i < 15; i++ {
		apps = append(apps, makeApp(model.StatusApplied, "2025-01-01", fmt.Sprintf("skill-%d", i)))
	}

	assert.Len(t, TopSkills(apps), 10)
}

func TestAverageResponseTime(t *testing.T) {
	withTimeline := func(dates ...string) model.Application {
		app := makeApp(model.StatusInterview, "2025-01-01")
		for _, d := range dates {
			app.Timeline = append(app.Timeline, model.TimelineEvent{Date: d})
		}
		return app
	}

	apps := []model.Application{
		withTimeline("2025-01-01", "2025-01-04"), // 3 days
		withTimeline("2025-01-01", "2025-01-06"), // 5 days
		withTimeline("2025-01-01"),               // <2 events, excluded entirely
		withTimeline(),                           // excluded
	}

	assert.InDelta(t, 4.0, AverageResponseTime(apps), 1e-9)
}

func TestAverageResponseTimeNoQualifyingRecords(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusApplied, "2025-01-01"),
	}
	assert.Zero(t, AverageResponseTime(apps))
	assert.Zero(t, AverageResponseTime(nil))
}

func TestRatesOnEmptyCollection(t *testing.T) {
	assert.Zero(t, SuccessRate(nil))
	assert.Zero(t, InterviewRate(nil))
	assert.Zero(t, RejectionRate(nil))
}

func TestRatesRounding(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusOffer, "2025-01-01"),
		makeApp(model.StatusAccepted, "2025-01-02"),
		makeApp(model.StatusInterview, "2025-01-03"),
	}

	// 2/3 offers -> 67, 1/3 interviews -> 33.
	assert.Equal(t, 67, SuccessRate(apps))
	assert.Equal(t, 33, InterviewRate(apps))
	assert.Equal(t, 0, RejectionRate(apps))
}

func TestSummarize(t *testing.T) {
	apps := []model.Application{
		makeApp(model.StatusOffer, "2025-01-01"),
		makeApp(model.StatusRejected, "2025-01-02"),
	}

	summary := Summarize(apps)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 50, summary.SuccessRate)
	assert.Equal(t, 50, summary.RejectionRate)
	assert.Equal(t, 0, summary.InterviewRate)
	assert.Equal(t, 1, summary.Statuses[model.StatusOffer])
	assert.Zero(t, summary.AvgResponseDays)
}
