package model

// ApprovalCategory 결재 문서 유형 테이블 — approval_categories
// 지출품의서, 휴가신청서 등
type ApprovalCategory struct {
	CategoryID  string `gorm:"type:varchar(50);primaryKey"  json:"category_id"`
	Name        string `gorm:"type:varchar(100);not null"   json:"name"`
	Description string `gorm:"type:text"                    json:"description,omitempty"`
	SortOrder   int    `gorm:"not null;default:0"           json:"sort_order"`
	IsActive    bool   `gorm:"not null;default:true"        json:"is_active"`
	BaseModel
}

// TableName 테이블명 지정
func (ApprovalCategory) TableName() string { return "approval_categories" }
