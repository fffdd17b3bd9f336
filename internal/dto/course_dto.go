package dto

import "github.com/edupulse/course-activity-api/internal/models"

// CourseCreateRequest captures the admin payload for creating a course.
type CourseCreateRequest struct {
	CourseCode   string `json:"course_code" validate:"required,max=20"`
	CourseTitle  string `json:"course_title" validate:"required,max=255"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructor_id" validate:"required"`
}

// CourseUpdateRequest captures partial course updates.
type CourseUpdateRequest struct {
	CourseCode   string  `json:"course_code" validate:"omitempty,max=20"`
	CourseTitle  string  `json:"course_title" validate:"omitempty,max=255"`
	Description  *string `json:"description"`
	InstructorID *uint   `json:"instructor_id"`
}

// CourseResponse serializes a course with its assigned instructor.
type CourseResponse struct {
	ID          uint               `json:"id"`
	CourseCode  string             `json:"course_code"`
	CourseTitle string             `json:"course_title"`
	Description string             `json:"description"`
	Instructor  *BasicUserResponse `json:"instructor"`
}

// NewCourseResponse converts a course model into a DTO.
func NewCourseResponse(course models.Course) CourseResponse {
	response := CourseResponse{
		ID:          course.ID,
		CourseCode:  course.Code,
		CourseTitle: course.Title,
		Description: course.Description,
	}
	if course.Instructor != nil {
		instructor := NewBasicUserResponse(*course.Instructor)
		response.Instructor = &instructor
	}
	return response
}
