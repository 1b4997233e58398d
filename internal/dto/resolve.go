package dto

// ── 자동 결재선 결정 DTO ──

// ResolveLinesRequest 자동 결재선 결정 요청
type ResolveLinesRequest struct {
	CategoryID  string `json:"category_id"  binding:"required"`
	RequesterID string `json:"requester_id" binding:"required"`
}

// ResolvedLine 결정된 결재선 한 단계
// LineOrder 는 출력 순서 기준으로 1부터 다시 매긴다(템플릿의 원래 순번과 무관).
type ResolvedLine struct {
	ApproverID       string `json:"approver_id"`
	ApproverName     string `json:"approver_name"`
	ApproverPosition string `json:"approver_position"`
	ApproverTeam     string `json:"approver_team,omitempty"`
	LineType         string `json:"line_type"`
	LineOrder        int    `json:"line_order"`
	IsRequired       bool   `json:"is_required"`
}

// ResolveRequesterSummary 기안자 요약 정보
type ResolveRequesterSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Team       string `json:"team,omitempty"`
	Department string `json:"department,omitempty"`
}

// ResolveLinesResponse 자동 결재선 결정 응답
type ResolveLinesResponse struct {
	Lines     []ResolvedLine          `json:"lines"`
	Requester ResolveRequesterSummary `json:"requester"`
}
