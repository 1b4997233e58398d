package model

// Team 팀 테이블 — teams
type Team struct {
	TeamID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	DepartmentID string `gorm:"type:uuid;not null"                             json:"department_id"`
	BaseModel

	// 관계
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 테이블명 지정
func (Team) TableName() string { return "teams" }
