package models

// Course is owned by at most one instructor; removing the instructor leaves
// the course unassigned rather than deleting it.
type Course struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Code         string `gorm:"size:20;uniqueIndex;not null" json:"course_code"`
	Title        string `gorm:"size:255;not null" json:"course_title"`
	Description  string `gorm:"type:text" json:"description"`
	InstructorID *uint  `json:"instructor_id"`

	Instructor *User `gorm:"constraint:OnDelete:SET NULL" json:"instructor,omitempty"`
}
