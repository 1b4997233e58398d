package model

// ── 결재자 지정 방식 ──

const (
	ApproverTypePosition = "position" // 직급 라벨로 결재자 탐색
	ApproverTypeRole     = "role"     // 역할명으로 결재자 탐색
	ApproverTypeUser     = "user"     // 사용자 ID 직접 지정
)

// ── 결재선 타입 ──

const (
	LineTypeApproval  = "approval"  // 결재 (결정권 있음)
	LineTypeReview    = "review"    // 검토 (의견 제시)
	LineTypeReference = "reference" // 참조 (열람만)
)

// DefaultApprovalLine 기본 결재선 설정 테이블 — default_approval_lines
// 카테고리 단위 규칙이며, 팀/부서로 좁힐 수 있다(team_id/department_id 모두 NULL이면 전사 적용).
type DefaultApprovalLine struct {
	LineID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CategoryID    string  `gorm:"type:varchar(50);not null;index"                json:"category_id"`
	TeamID        *string `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	DepartmentID  *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	ApproverType  string  `gorm:"type:varchar(20);not null"                      json:"approver_type"`
	ApproverValue string  `gorm:"type:varchar(100);not null"                     json:"approver_value"`
	LineType      string  `gorm:"type:varchar(20);not null;default:'approval'"   json:"line_type"`
	LineOrder     int     `gorm:"not null"                                       json:"line_order"`
	IsRequired    bool    `gorm:"not null;default:true"                          json:"is_required"`
	BaseModel

	// 관계
	Category   *ApprovalCategory `gorm:"foreignKey:CategoryID;references:CategoryID"     json:"category,omitempty"`
	Team       *Team             `gorm:"foreignKey:TeamID;references:TeamID"             json:"team,omitempty"`
	Department *Department       `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 테이블명 지정
func (DefaultApprovalLine) TableName() string { return "default_approval_lines" }

// IsValidApproverType approver_type 유효성 검사
func IsValidApproverType(t string) bool {
	return t == ApproverTypePosition || t == ApproverTypeRole || t == ApproverTypeUser
}

// IsValidLineType line_type 유효성 검사
func IsValidLineType(t string) bool {
	return t == LineTypeApproval || t == LineTypeReview || t == LineTypeReference
}
