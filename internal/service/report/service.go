package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.EventRepository
	identity.IdentityRepository
	location *time.Location

	// now is injectable for tests
	now func() time.Time
}

// DailyTotal implements report.ReportService.
//
// Events of the day are paired in order of occurrence: first with second,
// third with fourth, and so on. A trailing unpaired arrival on the current
// day is treated as still in progress and counted up to the current
// instant; on past dates it is a forgotten departure and contributes
// nothing.
func (s *ReportServiceImpl) DailyTotal(ctx context.Context, req report.DailyTotalRequest) (report.DailyTotalResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailyTotalResponse{}, err
	}

	if _, err := s.IdentityRepository.GetByID(ctx, req.IdentityID); err != nil {
		return report.DailyTotalResponse{}, err
	}

	now := s.now().In(s.location)
	today := now.Format(attendance.DateLayout)
	date := today
	if req.Date != nil && *req.Date != "" {
		date = *req.Date
	}

	events, err := s.EventRepository.ListByDate(ctx, req.IdentityID, date)
	if err != nil {
		return report.DailyTotalResponse{}, fmt.Errorf("failed to load events: %w", err)
	}

	var total time.Duration
	for i := 0; i+1 < len(events); i += 2 {
		total += events[i+1].CreatedAt.Sub(events[i].CreatedAt)
	}
	if len(events)%2 == 1 && date == today {
		last := events[len(events)-1]
		if last.State == attendance.StateArrived {
			total += now.Sub(last.CreatedAt)
		}
	}

	return report.DailyTotalResponse{
		IdentityID:   req.IdentityID,
		Date:         date,
		WorkingHours: roundHours(total),
	}, nil
}

// WeeklyBreakdown implements report.ReportService.
//
// Unlike the daily total, only complete Arrived/Departed pairs count here;
// an open arrival contributes nothing until its departure is recorded.
// Each pair is bucketed under the arrival's calendar date.
func (s *ReportServiceImpl) WeeklyBreakdown(ctx context.Context, req report.WeeklyBreakdownRequest) (report.WeeklyBreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyBreakdownResponse{}, err
	}

	if _, err := s.IdentityRepository.GetByID(ctx, req.IdentityID); err != nil {
		return report.WeeklyBreakdownResponse{}, err
	}

	asOf := s.now().In(s.location)
	if req.AsOf != nil && *req.AsOf != "" {
		parsed, err := time.ParseInLocation(attendance.DateLayout, *req.AsOf, s.location)
		if err != nil {
			return report.WeeklyBreakdownResponse{}, fmt.Errorf("failed to parse as_of date: %w", err)
		}
		asOf = parsed
	}

	from := asOf.AddDate(0, 0, -6)
	events, err := s.EventRepository.ListRange(ctx, req.IdentityID,
		from.Format(attendance.DateLayout), asOf.Format(attendance.DateLayout))
	if err != nil {
		return report.WeeklyBreakdownResponse{}, fmt.Errorf("failed to load events: %w", err)
	}

	totals := make(map[string]time.Duration)
	for i := 0; i+1 < len(events); {
		if events[i].State == attendance.StateArrived && events[i+1].State == attendance.StateDeparted {
			totals[events[i].EventDate] += events[i+1].CreatedAt.Sub(events[i].CreatedAt)
			i += 2
		} else {
			i++
		}
	}

	days := make([]report.DayHours, 0, 7)
	for d := 0; d < 7; d++ {
		day := from.AddDate(0, 0, d)
		date := day.Format(attendance.DateLayout)
		days = append(days, report.DayHours{
			Day:   day.Format("Mon"),
			Date:  date,
			Hours: roundHours(totals[date]),
		})
	}

	return report.WeeklyBreakdownResponse{
		IdentityID: req.IdentityID,
		Days:       days,
	}, nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func NewReportService(
	eventRepo attendance.EventRepository,
	identityRepo identity.IdentityRepository,
	location *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		EventRepository:    eventRepo,
		IdentityRepository: identityRepo,
		location:           location,
		now:                time.Now,
	}
}
