package services

import (
	"fmt"
	"math"
	"time"

	"weddingplanner/internal/domain"
)

// Alert thresholds, in percent of the budgeted amount.
const (
	budgetWarningPct = 90
	budgetErrorPct   = 100
)

// percent returns round(part/whole*100), or 0 when whole is zero.
func percent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// SummarizeBudget totals the budget items of an event.
func SummarizeBudget(items []*domain.BudgetItem) domain.BudgetSummary {
	var s domain.BudgetSummary
	for _, it := range items {
		s.TotalBudgeted += it.Budgeted
		s.TotalSpent += it.Spent
	}
	s.Remaining = s.TotalBudgeted - s.TotalSpent
	s.PercentageUsed = percent(s.TotalSpent, s.TotalBudgeted)
	s.IsOverBudget = s.TotalSpent > s.TotalBudgeted
	return s
}

// BudgetAlerts flags items above 90% (warning) or 100% (error) of their allocation.
// Items without an allocation never alert.
func BudgetAlerts(items []*domain.BudgetItem) []domain.BudgetAlert {
	alerts := make([]domain.BudgetAlert, 0)
	for _, it := range items {
		if it.Budgeted == 0 {
			continue
		}
		pct := it.Spent / it.Budgeted * 100
		switch {
		case pct > budgetErrorPct:
			alerts = append(alerts, domain.BudgetAlert{
				ItemID:     it.ID,
				Category:   it.Category,
				Type:       domain.AlertError,
				Percentage: math.Round(pct),
				Message:    fmt.Sprintf("%s is over budget (%.0f%% used)", it.Category, pct),
			})
		case pct > budgetWarningPct:
			alerts = append(alerts, domain.BudgetAlert{
				ItemID:     it.ID,
				Category:   it.Category,
				Type:       domain.AlertWarning,
				Percentage: math.Round(pct),
				Message:    fmt.Sprintf("%s is nearly over budget (%.0f%% used)", it.Category, pct),
			})
		}
	}
	return alerts
}

// SummarizeRSVPs counts guest responses. Only attending guests with a named plus-one add a seat.
func SummarizeRSVPs(guests []*domain.Guest) domain.RSVPStats {
	s := domain.RSVPStats{Total: len(guests)}
	for _, g := range guests {
		switch g.RSVPStatus {
		case domain.RSVPAttending:
			s.Attending++
			if g.HasNamedPlusOne() {
				s.PlusOnes++
			}
		case domain.RSVPDeclined:
			s.Declined++
		case domain.RSVPPending:
			s.Pending++
		}
	}
	s.TotalAttending = s.Attending + s.PlusOnes
	s.ResponseRate = percent(float64(s.Attending+s.Declined), float64(s.Total))
	return s
}

// SummarizeTasks computes completion figures as of now.
func SummarizeTasks(tasks []*domain.Task, now time.Time) domain.TaskStats {
	s := domain.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.DueDate != nil && t.DueDate.Before(now) {
			s.Overdue++
		}
	}
	s.CompletionRate = percent(float64(s.Completed), float64(s.Total))
	return s
}

// RateVendor averages verified reviews to one decimal place.
func RateVendor(reviews []*domain.Review) domain.VendorRating {
	var sum, n int
	for _, r := range reviews {
		if !r.IsVerified {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return domain.VendorRating{}
	}
	mean := float64(sum) / float64(n)
	return domain.VendorRating{
		Rating:      math.Round(mean*10) / 10,
		ReviewCount: n,
	}
}
