package model

import "time"

// ── 결재 요청 상태 ──

const (
	RequestStatusDraft     = "draft"     // 임시저장
	RequestStatusPending   = "pending"   // 결재 진행 중
	RequestStatusApproved  = "approved"  // 최종 승인
	RequestStatusRejected  = "rejected"  // 반려
	RequestStatusWithdrawn = "withdrawn" // 기안자 회수
)

// ApprovalRequest 결재 요청 테이블 — approval_requests
type ApprovalRequest struct {
	RequestID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DocumentNumber   string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"document_number"`
	CategoryID       string     `gorm:"type:varchar(50);not null;index"                json:"category_id"`
	Title            string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Content          string     `gorm:"type:text"                                      json:"content,omitempty"`
	RequesterID      string     `gorm:"type:uuid;not null;index"                       json:"requester_id"`
	RequesterTeamID  *string    `gorm:"type:uuid"                                      json:"requester_team_id,omitempty"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	CurrentLineOrder int        `gorm:"not null;default:1"                             json:"current_line_order"`
	SubmittedAt      *time.Time `gorm:""                                               json:"submitted_at,omitempty"`
	CompletedAt      *time.Time `gorm:""                                               json:"completed_at,omitempty"`
	BaseModel

	// 관계
	Category  *ApprovalCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Requester *User             `gorm:"foreignKey:RequesterID;references:UserID"    json:"requester,omitempty"`
	Lines     []ApprovalLine    `gorm:"foreignKey:RequestID;references:RequestID"   json:"lines,omitempty"`
}

// TableName 테이블명 지정
func (ApprovalRequest) TableName() string { return "approval_requests" }
