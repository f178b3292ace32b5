package enrollment

import "github.com/google/uuid"

type StudentCourse struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index;column:course_id" json:"course_id"`

	Student *Student `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"-"`
	Course  *Course  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`
}

func (StudentCourse) TableName() string { return "student_course" }
