package service

import (
	"context"
	"math"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

const recentApplicationLimit = 5

// DashboardStats aggregates status counts, the recruitment funnel, the five
// newest applications and stage conversion rates.
func (s *ApplicationService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.applications.Recent(ctx, recentApplicationLimit)
	if err != nil {
		return nil, err
	}

	statusCounts := make(map[string]int, len(entity.ValidStatuses))
	total := 0
	for _, status := range entity.ValidStatuses {
		statusCounts[status] = counts[status]
	}
	for _, n := range counts {
		total += n
	}

	funnel := dto.FunnelStats{
		TotalApplications: total,
		PassedScreening:   counts[entity.StatusAssessment] + counts[entity.StatusInterviewing] + counts[entity.StatusHired],
		PassedAssessment:  counts[entity.StatusInterviewing] + counts[entity.StatusHired],
		PassedInterview:   counts[entity.StatusHired],
		Hired:             counts[entity.StatusHired],
	}

	return &dto.DashboardStats{
		StatusCounts:       statusCounts,
		Funnel:             funnel,
		RecentApplications: recent,
		ConversionRates: dto.ConversionRates{
			ScreeningRate:  rate(funnel.PassedScreening, funnel.TotalApplications),
			AssessmentRate: rate(funnel.PassedAssessment, funnel.PassedScreening),
			InterviewRate:  rate(funnel.PassedInterview, funnel.PassedAssessment),
			HireRate:       rate(funnel.Hired, funnel.TotalApplications),
		},
	}, nil
}

// rate returns num/den as a percentage rounded to two decimals, zero when
// the denominator is empty.
func rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*100*100) / 100
}
