package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memUserRepo struct {
	seq   uint
	users map[uint]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]models.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.seq++
	user.ID = r.seq
	user.Profile.ID = r.seq
	user.Profile.UserID = r.seq
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *memUserRepo) Save(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLogin = &at
	r.users[id] = user
	return nil
}

type memDepartmentRepo struct {
	seq         uint
	departments map[uint]models.Department
}

func newMemDepartmentRepo(names ...string) *memDepartmentRepo {
	repo := &memDepartmentRepo{departments: map[uint]models.Department{}}
	for _, name := range names {
		repo.seq++
		repo.departments[repo.seq] = models.Department{ID: repo.seq, Name: name}
	}
	return repo
}

func (r *memDepartmentRepo) GetByID(ctx context.Context, id uint) (models.Department, error) {
	department, ok := r.departments[id]
	if !ok {
		return models.Department{}, gorm.ErrRecordNotFound
	}
	return department, nil
}

func (r *memDepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	departments := make([]models.Department, 0, len(r.departments))
	for _, department := range r.departments {
		departments = append(departments, department)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments, nil
}

func (r *memDepartmentRepo) GetOrCreate(ctx context.Context, name string) (models.Department, bool, error) {
	for _, department := range r.departments {
		if department.Name == name {
			return department, false, nil
		}
	}
	r.seq++
	department := models.Department{ID: r.seq, Name: name}
	r.departments[r.seq] = department
	return department, true, nil
}

type memCourseRepo struct {
	seq     uint
	courses map[uint]models.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[uint]models.Course{}}
}

func (r *memCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.seq++
	course.ID = r.seq
	r.courses[course.ID] = *course
	return nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id uint) (models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (r *memCourseRepo) GetByIDForInstructor(ctx context.Context, id, instructorID uint) (models.Course, error) {
	course, ok := r.courses[id]
	if !ok || course.InstructorID == nil || *course.InstructorID != instructorID {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (r *memCourseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, course := range r.courses {
		if course.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	courses := make([]models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (r *memCourseRepo) ListByInstructor(ctx context.Context, instructorID uint) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	for _, course := range r.courses {
		if course.InstructorID != nil && *course.InstructorID == instructorID {
			courses = append(courses, course)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (r *memCourseRepo) Save(ctx context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.courses[course.ID] = *course
	return nil
}

func (r *memCourseRepo) Delete(ctx context.Context, id uint) error {
	delete(r.courses, id)
	return nil
}

type memActivityRepo struct {
	seq     uint
	entries map[uint]models.ActivityLog
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{entries: map[uint]models.ActivityLog{}}
}

func (r *memActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	r.seq++
	entry.ID = r.seq
	if entry.LogDate.IsZero() {
		entry.LogDate = time.Now()
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *memActivityRepo) GetByIDForInstructor(ctx context.Context, id, instructorID uint) (models.ActivityLog, error) {
	entry, ok := r.entries[id]
	if !ok || entry.InstructorID != instructorID {
		return models.ActivityLog{}, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (r *memActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, error) {
	matched := make([]models.ActivityLog, 0)
	for _, entry := range r.entries {
		if filter.InstructorID != 0 && entry.InstructorID != filter.InstructorID {
			continue
		}
		if filter.ActivityType != "" && entry.ActivityType != filter.ActivityType {
			continue
		}
		if filter.CourseID != 0 && (entry.CourseID == nil || *entry.CourseID != filter.CourseID) {
			continue
		}
		if filter.From != nil && entry.LogDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.LogDate.After(*filter.To) {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].LogDate.After(matched[j].LogDate) })
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *memActivityRepo) ListBetween(ctx context.Context, from, to time.Time, instructorID *uint) ([]models.ActivityLog, error) {
	matched := make([]models.ActivityLog, 0)
	for _, entry := range r.entries {
		if entry.LogDate.Before(from) || entry.LogDate.After(to) {
			continue
		}
		if instructorID != nil && entry.InstructorID != *instructorID {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].LogDate.Before(matched[j].LogDate) })
	return matched, nil
}

func (r *memActivityRepo) Save(ctx context.Context, entry *models.ActivityLog) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *memActivityRepo) Delete(ctx context.Context, id uint) error {
	delete(r.entries, id)
	return nil
}

type memReportRepo struct {
	seq     uint
	reports map[uint]models.Report
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: map[uint]models.Report{}}
}

func (r *memReportRepo) Create(ctx context.Context, report *models.Report) error {
	r.seq++
	report.ID = r.seq
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}
	r.reports[report.ID] = *report
	return nil
}

func (r *memReportRepo) GetByID(ctx context.Context, id uint) (models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return models.Report{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *memReportRepo) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	reports := make([]models.Report, 0)
	for _, report := range r.reports {
		if report.RequestedByID != nil && *report.RequestedByID == userID {
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].GeneratedAt.After(reports[j].GeneratedAt) })
	return reports, nil
}

func (r *memReportRepo) TransitionStatus(ctx context.Context, id uint, status models.ReportStatus, filePath, failureReason string) (bool, error) {
	report, ok := r.reports[id]
	if !ok || report.Status.Terminal() {
		return false, nil
	}
	report.Status = status
	if filePath != "" {
		report.FilePath = filePath
	}
	if failureReason != "" {
		report.FailureReason = failureReason
	}
	r.reports[id] = report
	return true, nil
}

func (r *memReportRepo) Delete(ctx context.Context, id uint) error {
	delete(r.reports, id)
	return nil
}

type recordedEvent struct {
	actorID   *uint
	eventType models.SystemEventType
	details   map[string]interface{}
}

type eventRecorderStub struct {
	events []recordedEvent
}

func (r *eventRecorderStub) Record(ctx context.Context, actorID *uint, eventType models.SystemEventType, details map[string]interface{}) error {
	r.events = append(r.events, recordedEvent{actorID: actorID, eventType: eventType, details: details})
	return nil
}

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Save(name string, data []byte) (string, error) {
	s.files[name] = data
	return name, nil
}

func (s *memStore) Open(path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: file does not exist", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Remove(path string) error {
	delete(s.files, path)
	return nil
}
