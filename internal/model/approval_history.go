package model

import "time"

// ApprovalHistory 결재 이력 테이블 — approval_history
type ApprovalHistory struct {
	HistoryID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID    string    `gorm:"type:uuid;not null;index"                       json:"request_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Action       string    `gorm:"type:varchar(30);not null"                      json:"action"`
	ActionDetail string    `gorm:"type:text"                                      json:"action_detail,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 테이블명 지정
func (ApprovalHistory) TableName() string { return "approval_history" }
