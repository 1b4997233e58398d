package dto

// ── 조직 조회 DTO ──

// TeamListRequest 팀 목록 조회 파라미터
type TeamListRequest struct {
	DepartmentID string `form:"department_id"`
}

// UserListRequest 사용자 목록 조회 파라미터
type UserListRequest struct {
	TeamID   string `form:"team_id"`
	Position string `form:"position"`
}

// ── 직급 체계 DTO ──

// PositionLevelEntry 직급 레벨 한 건
type PositionLevelEntry struct {
	PositionName   string `json:"position_name"   binding:"required"`
	HierarchyLevel int    `json:"hierarchy_level" binding:"required"`
}

// UpsertPositionHierarchyRequest 직급 체계 일괄 갱신 요청
type UpsertPositionHierarchyRequest struct {
	Positions []PositionLevelEntry `json:"positions" binding:"required,min=1"`
}
