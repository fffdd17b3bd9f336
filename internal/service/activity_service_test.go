package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
)

func newActivityService(activities *memActivityRepo, courses *memCourseRepo) ActivityService {
	return NewActivityService(activities, courses, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func seedCourse(t *testing.T, courses *memCourseRepo, code string, instructorID uint) models.Course {
	t.Helper()
	course := models.Course{Code: code, Title: code + " Title", InstructorID: &instructorID}
	require.NoError(t, courses.Create(context.Background(), &course))
	return course
}

func TestActivityServiceRecord(t *testing.T) {
	activities := newMemActivityRepo()
	courses := newMemCourseRepo()
	svc := newActivityService(activities, courses)

	actor := Actor{ID: 5, Role: models.RoleInstructor}
	course := seedCourse(t, courses, "CS101", actor.ID)

	response, err := svc.Record(context.Background(), actor, dto.ActivityCreateRequest{
		ActivityType: "mdb_reply",
		CourseID:     course.ID,
		Details:      map[string]interface{}{"thread": "week 3"},
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ActivityMDBReply), response.ActivityType)
	require.NotNil(t, response.Course)
	require.Equal(t, "CS101", response.Course.CourseCode)
}

func TestActivityServiceRecordRejectsUnknownType(t *testing.T) {
	courses := newMemCourseRepo()
	svc := newActivityService(newMemActivityRepo(), courses)

	actor := Actor{ID: 5, Role: models.RoleInstructor}
	course := seedCourse(t, courses, "CS101", actor.ID)

	_, err := svc.Record(context.Background(), actor, dto.ActivityCreateRequest{
		ActivityType: "COFFEE_BREAK",
		CourseID:     course.ID,
		Details:      map[string]interface{}{"k": "v"},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivityServiceRecordEnforcesCourseOwnership(t *testing.T) {
	courses := newMemCourseRepo()
	svc := newActivityService(newMemActivityRepo(), courses)

	actor := Actor{ID: 5, Role: models.RoleInstructor}
	foreign := seedCourse(t, courses, "CS201", 99)

	_, err := svc.Record(context.Background(), actor, dto.ActivityCreateRequest{
		ActivityType: "MDB_REPLY",
		CourseID:     foreign.ID,
		Details:      map[string]interface{}{"k": "v"},
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Record(context.Background(), actor, dto.ActivityCreateRequest{
		ActivityType: "MDB_REPLY",
		CourseID:     999,
		Details:      map[string]interface{}{"k": "v"},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestActivityServiceListDropsUnparseableDates(t *testing.T) {
	activities := newMemActivityRepo()
	courses := newMemCourseRepo()
	svc := newActivityService(activities, courses)

	actor := Actor{ID: 5, Role: models.RoleInstructor}
	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: actor.ID,
		ActivityType: models.ActivityTicketResponse,
		LogDate:      time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}))

	entries, err := svc.List(context.Background(), actor, dto.ActivityListRequest{
		DateFrom: "not-a-date",
		DateTo:   "also wrong",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = svc.List(context.Background(), actor, dto.ActivityListRequest{DateFrom: "2025-03-06"})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestActivityServiceListFiltersByCourse(t *testing.T) {
	activities := newMemActivityRepo()
	courses := newMemCourseRepo()
	svc := newActivityService(activities, courses)

	actor := Actor{ID: 5, Role: models.RoleInstructor}
	first := seedCourse(t, courses, "CS101", actor.ID)
	second := seedCourse(t, courses, "CS202", actor.ID)

	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: actor.ID,
		CourseID:     &first.ID,
		ActivityType: models.ActivityMDBReply,
		LogDate:      time.Now(),
	}))
	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: actor.ID,
		CourseID:     &second.ID,
		ActivityType: models.ActivityGDBMarking,
		LogDate:      time.Now(),
	}))

	entries, err := svc.List(context.Background(), actor, dto.ActivityListRequest{CourseID: &second.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, string(models.ActivityGDBMarking), entries[0].ActivityType)

	entries, err = svc.List(context.Background(), actor, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestActivityServiceListIsScopedToActor(t *testing.T) {
	activities := newMemActivityRepo()
	svc := newActivityService(activities, newMemCourseRepo())

	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: 1,
		ActivityType: models.ActivityMDBReply,
		LogDate:      time.Now(),
	}))
	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: 2,
		ActivityType: models.ActivityMDBReply,
		LogDate:      time.Now(),
	}))

	entries, err := svc.List(context.Background(), Actor{ID: 1, Role: models.RoleInstructor}, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestActivityServiceUpdateAndDeleteOwnership(t *testing.T) {
	activities := newMemActivityRepo()
	courses := newMemCourseRepo()
	svc := newActivityService(activities, courses)

	owner := Actor{ID: 5, Role: models.RoleInstructor}
	intruder := Actor{ID: 6, Role: models.RoleInstructor}

	entry := models.ActivityLog{InstructorID: owner.ID, ActivityType: models.ActivityMDBReply, LogDate: time.Now()}
	require.NoError(t, activities.Create(context.Background(), &entry))

	newType := "GDB_MARKING"
	_, err := svc.Update(context.Background(), intruder, entry.ID, dto.ActivityUpdateRequest{ActivityType: &newType})
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(context.Background(), owner, entry.ID, dto.ActivityUpdateRequest{ActivityType: &newType})
	require.NoError(t, err)
	require.Equal(t, "GDB_MARKING", updated.ActivityType)

	require.ErrorIs(t, svc.Delete(context.Background(), intruder, entry.ID), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), owner, entry.ID))
}
