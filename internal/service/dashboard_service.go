package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

const analyticsWindowDays = 30

// DashboardService computes read-only statistics. Every call aggregates
// fresh from the store; there is no caching layer.
type DashboardService interface {
	AdminStats(ctx context.Context) (dto.AdminStatsResponse, error)
	InstructorStats(ctx context.Context, actor Actor) (dto.InstructorStatsResponse, error)
	AdminAnalytics(ctx context.Context) (dto.AdminAnalyticsResponse, error)
	InstructorPerformance(ctx context.Context, actor Actor) (dto.InstructorPerformanceResponse, error)
}

type dashboardService struct {
	repo   repository.DashboardRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(repo repository.DashboardRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger.With().Str("component", "dashboard_service").Logger(),
		now:    time.Now,
	}
}

// growth returns the percentage change of current versus previous, rounded
// to one decimal place. A zero baseline yields 0 when nothing changed and
// 100 when anything appeared.
func growth(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0.0
		}
		return 100.0
	}
	change := float64(current-previous) / float64(previous) * 100
	return math.Round(change*10) / 10
}

func (s *dashboardService) AdminStats(ctx context.Context) (dto.AdminStatsResponse, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	usersThisMonth, err := s.repo.CountUsersCreatedBetween(ctx, monthStart, nextMonthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	usersLastMonth, err := s.repo.CountUsersCreatedBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}

	activeInstructors, err := s.repo.CountActiveInstructors(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	instructorsThisMonth, err := s.repo.CountActiveInstructorsCreatedBetween(ctx, monthStart, nextMonthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	instructorsLastMonth, err := s.repo.CountActiveInstructorsCreatedBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}

	completedReports, err := s.repo.CountCompletedReports(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	reportsThisMonth, err := s.repo.CountCompletedReportsBetween(ctx, monthStart, nextMonthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}
	reportsLastMonth, err := s.repo.CountCompletedReportsBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}

	return dto.AdminStatsResponse{
		TotalUsers: dto.MetricWithGrowth{
			Count:         totalUsers,
			GrowthPercent: growth(usersThisMonth, usersLastMonth),
		},
		ActiveInstructors: dto.MetricWithGrowth{
			Count:         activeInstructors,
			GrowthPercent: growth(instructorsThisMonth, instructorsLastMonth),
		},
		ReportsGenerated: dto.MetricWithGrowth{
			Count:         completedReports,
			GrowthPercent: growth(reportsThisMonth, reportsLastMonth),
		},
	}, nil
}

func (s *dashboardService) InstructorStats(ctx context.Context, actor Actor) (dto.InstructorStatsResponse, error) {
	total, err := s.repo.CountActivitiesByInstructor(ctx, actor.ID)
	if err != nil {
		return dto.InstructorStatsResponse{}, err
	}

	entries, err := s.repo.ListActivities(ctx, &actor.ID)
	if err != nil {
		return dto.InstructorStatsResponse{}, err
	}

	recent, err := s.repo.RecentActivities(ctx, actor.ID, 5)
	if err != nil {
		return dto.InstructorStatsResponse{}, err
	}

	courseCount, err := s.repo.CountCoursesByInstructor(ctx, actor.ID)
	if err != nil {
		return dto.InstructorStatsResponse{}, err
	}

	recentResponses := make([]dto.ActivityResponse, 0, len(recent))
	for _, entry := range recent {
		recentResponses = append(recentResponses, dto.NewActivityResponse(entry))
	}

	return dto.InstructorStatsResponse{
		TotalActivities:   total,
		ActivityBreakdown: typeBreakdown(entries),
		RecentActivities:  recentResponses,
		AssignedCourses:   courseCount,
	}, nil
}

func (s *dashboardService) AdminAnalytics(ctx context.Context) (dto.AdminAnalyticsResponse, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -analyticsWindowDays)

	recent, err := s.repo.ListActivitiesSince(ctx, since, nil)
	if err != nil {
		return dto.AdminAnalyticsResponse{}, err
	}

	all, err := s.repo.ListActivities(ctx, nil)
	if err != nil {
		return dto.AdminAnalyticsResponse{}, err
	}

	instructors, err := s.repo.ListActiveInstructors(ctx)
	if err != nil {
		return dto.AdminAnalyticsResponse{}, err
	}

	return dto.AdminAnalyticsResponse{
		ActivityOverTime: dailySeries(recent),
		ActivityByType:   typeBreakdown(all),
		TopInstructors:   topInstructors(instructors, all, 5),
	}, nil
}

func (s *dashboardService) InstructorPerformance(ctx context.Context, actor Actor) (dto.InstructorPerformanceResponse, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -analyticsWindowDays)

	recent, err := s.repo.ListActivitiesSince(ctx, since, &actor.ID)
	if err != nil {
		return dto.InstructorPerformanceResponse{}, err
	}

	all, err := s.repo.ListActivities(ctx, &actor.ID)
	if err != nil {
		return dto.InstructorPerformanceResponse{}, err
	}

	return dto.InstructorPerformanceResponse{
		ActivityOverTime: dailySeries(recent),
		ActivityByType:   typeBreakdown(all),
		ActivityByCourse: courseBreakdown(all),
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// typeBreakdown groups entries by activity type, ordered by count descending
// with ties broken alphabetically for stable output.
func typeBreakdown(entries []models.ActivityLog) []dto.ActivityTypeCount {
	counts := map[models.ActivityType]int64{}
	for _, entry := range entries {
		counts[entry.ActivityType]++
	}

	breakdown := make([]dto.ActivityTypeCount, 0, len(counts))
	for activityType, count := range counts {
		breakdown = append(breakdown, dto.ActivityTypeCount{
			ActivityType: string(activityType),
			Count:        count,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].ActivityType < breakdown[j].ActivityType
	})
	return breakdown
}

func dailySeries(entries []models.ActivityLog) []dto.DailyActivityCount {
	counts := map[string]int64{}
	for _, entry := range entries {
		counts[entry.LogDate.Format(dto.DateLayout)]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]dto.DailyActivityCount, 0, len(days))
	for _, day := range days {
		series = append(series, dto.DailyActivityCount{Date: day, Count: counts[day]})
	}
	return series
}

func topInstructors(instructors []models.User, entries []models.ActivityLog, limit int) []dto.InstructorRank {
	counts := map[uint]int64{}
	for _, entry := range entries {
		counts[entry.InstructorID]++
	}

	ranks := make([]dto.InstructorRank, 0, len(instructors))
	for _, instructor := range instructors {
		ranks = append(ranks, dto.InstructorRank{
			Username:      instructor.Username,
			FirstName:     instructor.FirstName,
			LastName:      instructor.LastName,
			ActivityCount: counts[instructor.ID],
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].ActivityCount != ranks[j].ActivityCount {
			return ranks[i].ActivityCount > ranks[j].ActivityCount
		}
		return ranks[i].Username < ranks[j].Username
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

func courseBreakdown(entries []models.ActivityLog) []dto.CourseActivityCount {
	type courseKey struct {
		code  string
		title string
	}
	counts := map[courseKey]int64{}
	for _, entry := range entries {
		key := courseKey{}
		if entry.Course != nil {
			key.code = entry.Course.Code
			key.title = entry.Course.Title
		}
		counts[key]++
	}

	breakdown := make([]dto.CourseActivityCount, 0, len(counts))
	for key, count := range counts {
		breakdown = append(breakdown, dto.CourseActivityCount{
			CourseCode:  key.code,
			CourseTitle: key.title,
			Count:       count,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].CourseCode < breakdown[j].CourseCode
	})
	return breakdown
}
