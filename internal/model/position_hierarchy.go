package model

// PositionHierarchy 직급 체계 테이블 — position_hierarchy
// 직급 라벨을 정수 서열 레벨로 매핑한다(숫자가 클수록 상급자).
type PositionHierarchy struct {
	PositionName   string `gorm:"type:varchar(50);primaryKey" json:"position_name"`
	HierarchyLevel int    `gorm:"not null"                    json:"hierarchy_level"`
	BaseModel
}

// TableName 테이블명 지정
func (PositionHierarchy) TableName() string { return "position_hierarchy" }
