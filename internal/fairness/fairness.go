package fairness

import (
	"math"

	"github.com/duetapp/duet/internal/model"
)

const (
	// WakingHoursPerWeek is the assumed non-sleep time each member has
	// available per week.
	WakingHoursPerWeek = 112

	// minFreeHours is the floor on modeled discretionary time, so a member
	// working the 80-hour cap still has free time in the math.
	minFreeHours = 10

	// incomeDiscount is the maximum reduction of expected task time for the
	// member carrying the full income share.
	incomeDiscount = 0.4

	defaultWorkHours = 40
)

// Result is the outcome of one fairness evaluation. It is computed fresh on
// every call and never persisted.
type Result struct {
	Score                int     `json:"score"`
	Member1ExpectedShare float64 `json:"member1_expected_share"`
	Member2ExpectedShare float64 `json:"member2_expected_share"`
	Member1ActualShare   float64 `json:"member1_actual_share"`
	Member2ActualShare   float64 `json:"member2_actual_share"`
	Member1TotalPoints   int     `json:"member1_total_points"`
	Member2TotalPoints   int     `json:"member2_total_points"`
	Suggestion           string  `json:"suggestion"`
}

// Suggestion texts, selected by score threshold.
const (
	SuggestionNoTasks = "Assign tasks to each member to see your balance."

	SuggestionBalanced = "Task distribution is well balanced according to your agreement."

	SuggestionOffload = "You could reassign some of your tasks to improve the balance."

	SuggestionTakeOn = "Your partner is carrying more than expected. Consider taking on another task."

	SuggestionUnbalanced = "Task distribution is quite unbalanced. Review your assignments together."
)

// WeeklyPoints converts a task's base point value into its expected
// points-per-week contribution for the given recurrence frequency.
// Frequencies are validated at the data-entry boundary (Frequency.Valid);
// an unrecognized value falls through to the weekly multiplier of 1, matching
// how an unvalidated row has always been scored.
func WeeklyPoints(basePoints int, f model.Frequency) float64 {
	multiplier := 1.0
	switch f {
	case model.FrequencyDaily:
		multiplier = 7
	case model.FrequencyBiweekly:
		multiplier = 0.5
	case model.FrequencyMonthly:
		multiplier = 0.25
	case model.FrequencyFlexible:
		multiplier = 0.5
	}
	return float64(basePoints) * multiplier
}

// memberInput is one member's fully-resolved contribution to the score: all
// defaulting and clamping happens before this struct exists, so the
// arithmetic below never sees a missing or out-of-range value.
type memberInput struct {
	income    float64
	freeHours float64
}

func resolveMember(configs []model.MemberWorkConfig, userID int64) memberInput {
	income := 0.0
	hours := float64(defaultWorkHours)
	for _, c := range configs {
		if c.UserID == userID {
			income = math.Max(c.MonthlyIncome, 0)
			hours = c.WeeklyWorkHours
			break
		}
	}
	if hours < 0 {
		hours = 0
	}
	if hours > model.MaxWeeklyWorkHours {
		hours = model.MaxWeeklyWorkHours
	}
	return memberInput{
		income:    income,
		freeHours: math.Max(WakingHoursPerWeek-hours, minFreeHours),
	}
}

// Calculate produces a fairness Result for the two given members. Expected
// shares blend free time and income; actual shares come from the
// weekly-normalized points of active task ownerships. The function is pure:
// all data is supplied by the caller and nothing is read or written.
//
// Member 1 is the viewer; the "improvable" suggestion is phrased from their
// perspective.
func Calculate(configs []model.MemberWorkConfig, ownerships []model.TaskOwnership, tasks []model.CatalogTask, member1ID, member2ID int64) Result {
	m1 := resolveMember(configs, member1ID)
	m2 := resolveMember(configs, member2ID)

	totalFree := m1.freeHours + m2.freeHours
	timeShare1 := m1.freeHours / totalFree
	timeShare2 := m2.freeHours / totalFree

	incomeShare1, incomeShare2 := 0.5, 0.5
	if total := m1.income + m2.income; total > 0 {
		incomeShare1 = m1.income / total
		incomeShare2 = m2.income / total
	}

	raw1 := timeShare1 * (1 - incomeShare1*incomeDiscount)
	raw2 := timeShare2 * (1 - incomeShare2*incomeDiscount)

	expected1, expected2 := 0.5, 0.5
	if total := raw1 + raw2; total > 0 {
		expected1 = raw1 / total
		expected2 = raw2 / total
	}

	taskPoints := make(map[int64]int, len(tasks))
	for _, t := range tasks {
		taskPoints[t.ID] = t.BasePoints
	}

	var points1, points2 float64
	for _, o := range ownerships {
		if !o.Active {
			continue
		}
		base, ok := taskPoints[o.TaskID]
		if !ok {
			continue
		}
		weekly := WeeklyPoints(base, o.Frequency)
		switch o.OwnerID {
		case member1ID:
			points1 += weekly
		case member2ID:
			points2 += weekly
		}
	}

	totalPoints := points1 + points2
	actual1, actual2 := 0.5, 0.5
	if totalPoints > 0 {
		actual1 = points1 / totalPoints
		actual2 = points2 / totalPoints
	}

	deviation := math.Abs(actual1 - expected1)
	score := int(math.Round((1 - deviation*2) * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var suggestion string
	switch {
	case totalPoints == 0:
		suggestion = SuggestionNoTasks
	case score >= 85:
		suggestion = SuggestionBalanced
	case score >= 60:
		if actual1 > expected1 {
			suggestion = SuggestionOffload
		} else {
			suggestion = SuggestionTakeOn
		}
	default:
		suggestion = SuggestionUnbalanced
	}

	return Result{
		Score:                score,
		Member1ExpectedShare: expected1,
		Member2ExpectedShare: expected2,
		Member1ActualShare:   actual1,
		Member2ActualShare:   actual2,
		Member1TotalPoints:   int(math.Round(points1)),
		Member2TotalPoints:   int(math.Round(points2)),
		Suggestion:           suggestion,
	}
}
