package report

import (
	"context"
)

// ReportService reconstructs worked time from the event log. All methods
// are read-only and safe to recompute.
type ReportService interface {
	// DailyTotal sums the worked intervals of one identity on one
	// calendar date. A trailing open arrival counts up to "now".
	DailyTotal(ctx context.Context, req DailyTotalRequest) (DailyTotalResponse, error)

	// WeeklyBreakdown buckets complete Arrived/Departed pairs per day for
	// the seven calendar days ending at the as-of date inclusive. Open
	// intervals are excluded.
	WeeklyBreakdown(ctx context.Context, req WeeklyBreakdownRequest) (WeeklyBreakdownResponse, error)
}
