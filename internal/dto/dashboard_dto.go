package dto

// MetricWithGrowth pairs a dashboard count with its growth percentage
// relative to the prior calendar month.
type MetricWithGrowth struct {
	Count         int64   `json:"count"`
	GrowthPercent float64 `json:"growth_percent"`
}

// AdminStatsResponse aggregates the admin dashboard headline numbers.
type AdminStatsResponse struct {
	TotalUsers        MetricWithGrowth `json:"total_users"`
	ActiveInstructors MetricWithGrowth `json:"active_instructors"`
	ReportsGenerated  MetricWithGrowth `json:"reports_generated"`
}

// ActivityTypeCount is one row of a per-type activity breakdown.
type ActivityTypeCount struct {
	ActivityType string `json:"activity_type"`
	Count        int64  `json:"count"`
}

// DailyActivityCount is one point of a per-day activity time series.
type DailyActivityCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// InstructorRank is one row of the top-instructors leaderboard.
type InstructorRank struct {
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ActivityCount int64  `json:"activity_count"`
}

// CourseActivityCount is one row of a per-course activity breakdown.
type CourseActivityCount struct {
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	Count       int64  `json:"count"`
}

// InstructorStatsResponse aggregates an instructor's dashboard numbers.
type InstructorStatsResponse struct {
	TotalActivities   int64               `json:"total_activities"`
	ActivityBreakdown []ActivityTypeCount `json:"activity_breakdown"`
	RecentActivities  []ActivityResponse  `json:"recent_activities"`
	AssignedCourses   int64               `json:"assigned_courses"`
}

// AdminAnalyticsResponse aggregates chart data for the admin analytics view.
type AdminAnalyticsResponse struct {
	ActivityOverTime []DailyActivityCount `json:"activity_over_time"`
	ActivityByType   []ActivityTypeCount  `json:"activity_by_type"`
	TopInstructors   []InstructorRank     `json:"top_instructors"`
}

// InstructorPerformanceResponse scopes the analytics series to one instructor
// and adds the per-course breakdown.
type InstructorPerformanceResponse struct {
	ActivityOverTime []DailyActivityCount  `json:"activity_over_time"`
	ActivityByType   []ActivityTypeCount   `json:"activity_by_type"`
	ActivityByCourse []CourseActivityCount `json:"activity_by_course"`
}
