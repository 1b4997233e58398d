package dto

import "github.com/erurang/wooyangcrm-backend/internal/model"

// ── 기본 결재선 설정 DTO ──

// DefaultLineListRequest 기본 결재선 목록 조회 파라미터
type DefaultLineListRequest struct {
	CategoryID string `form:"category_id"`
	TeamID     string `form:"team_id"`
}

// CreateDefaultLineRequest 기본 결재선 추가 요청
// LineOrder 가 0이면 같은 범위(카테고리+팀+부서)의 max(line_order)+1 로 자동 부여된다.
type CreateDefaultLineRequest struct {
	CategoryID    string  `json:"category_id"    binding:"required"`
	TeamID        *string `json:"team_id"`
	DepartmentID  *string `json:"department_id"`
	ApproverType  string  `json:"approver_type"  binding:"required"`
	ApproverValue string  `json:"approver_value" binding:"required"`
	LineType      string  `json:"line_type"`
	LineOrder     int     `json:"line_order"`
	IsRequired    *bool   `json:"is_required"`
}

// BulkUpdateDefaultLinesRequest 한 범위의 결재선 일괄 교체 요청
type BulkUpdateDefaultLinesRequest struct {
	CategoryID   string                  `json:"category_id" binding:"required"`
	TeamID       *string                 `json:"team_id"`
	DepartmentID *string                 `json:"department_id"`
	Lines        []BulkUpdateDefaultLine `json:"lines" binding:"required"`
}

// BulkUpdateDefaultLine 일괄 교체 항목
type BulkUpdateDefaultLine struct {
	ApproverType  string `json:"approver_type"  binding:"required"`
	ApproverValue string `json:"approver_value" binding:"required"`
	LineType      string `json:"line_type"`
	LineOrder     int    `json:"line_order"`
	IsRequired    *bool  `json:"is_required"`
}

// DefaultLineGroup 카테고리별 그룹 응답
type DefaultLineGroup struct {
	Category *model.ApprovalCategory     `json:"category"`
	Lines    []model.DefaultApprovalLine `json:"lines"`
}

// DefaultLineListResponse 기본 결재선 목록 응답
type DefaultLineListResponse struct {
	Data    []model.DefaultApprovalLine `json:"data"`
	Grouped []DefaultLineGroup          `json:"grouped"`
}
