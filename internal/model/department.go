package model

// Department 부서 테이블 — departments
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName 테이블명 지정
func (Department) TableName() string { return "departments" }
