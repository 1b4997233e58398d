package dto

import "github.com/erurang/wooyangcrm-backend/internal/model"

// ── 결재 요청 DTO ──

// CreateApprovalRequest 결재 요청 생성
// IsDraft 가 true 면 임시저장으로 생성되며 결재선이 없어도 된다.
type CreateApprovalRequest struct {
	CategoryID      string                `json:"category_id"       binding:"required"`
	Title           string                `json:"title"             binding:"required,max=200"`
	Content         string                `json:"content"`
	RequesterID     string                `json:"requester_id"      binding:"required"`
	RequesterTeamID *string               `json:"requester_team_id"`
	Lines           []CreateApprovalLine  `json:"lines"`
	IsDraft         bool                  `json:"is_draft"`
}

// CreateApprovalLine 결재 요청 생성 시 결재선 한 단계
type CreateApprovalLine struct {
	ApproverID   string  `json:"approver_id" binding:"required"`
	ApproverTeam *string `json:"approver_team"`
	LineType     string  `json:"line_type"`
	LineOrder    int     `json:"line_order"  binding:"required"`
	IsRequired   *bool   `json:"is_required"`
}

// ApprovalListRequest 결재 목록 조회 파라미터
// Tab: all | pending(내 결재 차례) | requested(내 기안) | approved(완료) | reference(참조)
type ApprovalListRequest struct {
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
	Tab         string `form:"tab"`
	Status      string `form:"status"`
	CategoryID  string `form:"category_id"`
	RequesterID string `form:"requester_id"`
	ApproverID  string `form:"approver_id"`
	Keyword     string `form:"keyword"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}

// ApprovalListResponse 결재 목록 응답
type ApprovalListResponse struct {
	Data       []model.ApprovalRequest `json:"data"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

// ── 결재 액션 DTO ──

// ApprovalActionRequest 결재 액션 요청 (approve/reject/delegate/withdraw)
type ApprovalActionRequest struct {
	Action          string `json:"action"  binding:"required"`
	UserID          string `json:"user_id" binding:"required"`
	Comment         string `json:"comment"`
	DelegatedTo     string `json:"delegated_to"`
	DelegatedReason string `json:"delegated_reason"`
}

// ApprovalActionResponse 결재 액션 응답
type ApprovalActionResponse struct {
	Message string `json:"message"`
	IsFinal bool   `json:"is_final,omitempty"`
}

// ── 결재 통계 DTO ──

// StatisticsRequest 결재 통계 조회 파라미터
type StatisticsRequest struct {
	UserID string `form:"user_id"`
	Scope  string `form:"scope"` // all | my
}

// MonthlyStat 월별 결재 추이 (최근 6개월)
type MonthlyStat struct {
	Month    string `json:"month"` // "2026-08"
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Pending  int    `json:"pending"`
}

// CategoryStat 카테고리별 통계
type CategoryStat struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
	Approved     int    `json:"approved"`
	Rejected     int    `json:"rejected"`
	Pending      int    `json:"pending"`
}

// ProcessingTimeStat 처리 시간 통계 (완료 문서 기준, 시간 단위)
type ProcessingTimeStat struct {
	AvgHours       float64 `json:"avg_hours"`
	MinHours       float64 `json:"min_hours"`
	MaxHours       float64 `json:"max_hours"`
	TotalCompleted int     `json:"total_completed"`
}

// StatisticsResponse 결재 통계 응답
type StatisticsResponse struct {
	Monthly        []MonthlyStat      `json:"monthly"`
	Categories     []CategoryStat     `json:"categories"`
	ProcessingTime ProcessingTimeStat `json:"processing_time"`
}
