package model

import "time"

// ── 결재선 상태 ──

const (
	LineStatusPending  = "pending"  // 대기 중
	LineStatusApproved = "approved" // 승인
	LineStatusRejected = "rejected" // 반려
	LineStatusSkipped  = "skipped"  // 건너뜀
)

// ApprovalLine 결재선 테이블 — approval_lines
// 결재 요청 하나에 속한 단계별 결재 슬롯.
type ApprovalLine struct {
	LineID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID       string     `gorm:"type:uuid;not null;index"                       json:"request_id"`
	ApproverID      string     `gorm:"type:uuid;not null;index"                       json:"approver_id"`
	ApproverTeam    *string    `gorm:"type:varchar(100)"                              json:"approver_team,omitempty"`
	LineType        string     `gorm:"type:varchar(20);not null;default:'approval'"   json:"line_type"`
	LineOrder       int        `gorm:"not null"                                       json:"line_order"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Comment         *string    `gorm:"type:text"                                      json:"comment,omitempty"`
	ActedAt         *time.Time `gorm:""                                               json:"acted_at,omitempty"`
	IsRequired      bool       `gorm:"not null;default:true"                          json:"is_required"`
	DelegatedTo     *string    `gorm:"type:uuid"                                      json:"delegated_to,omitempty"`
	DelegatedReason *string    `gorm:"type:text"                                      json:"delegated_reason,omitempty"`
	BaseModel

	// 관계
	Approver *User `gorm:"foreignKey:ApproverID;references:UserID" json:"approver,omitempty"`
}

// TableName 테이블명 지정
func (ApprovalLine) TableName() string { return "approval_lines" }
