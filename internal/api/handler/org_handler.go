package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/service"
	"github.com/erurang/wooyangcrm-backend/pkg/response"
)

// OrgHandler 조직 참조 데이터 HTTP 처리기
type OrgHandler struct {
	orgSvc service.OrgService
}

// NewOrgHandler OrgHandler 생성
func NewOrgHandler(orgSvc service.OrgService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

// ListDepartments 부서 목록 조회
// GET /api/v1/org/departments
func (h *OrgHandler) ListDepartments(c *gin.Context) {
	depts, err := h.orgSvc.ListDepartments(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": depts})
}

// ListTeams 팀 목록 조회
// GET /api/v1/org/teams
func (h *OrgHandler) ListTeams(c *gin.Context) {
	var req dto.TeamListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	teams, err := h.orgSvc.ListTeams(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": teams})
}

// ListUsers 사용자 목록 조회
// GET /api/v1/org/users
func (h *OrgHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	users, err := h.orgSvc.ListUsers(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": users})
}

// ListCategories 결재 카테고리 목록 조회
// GET /api/v1/org/categories
func (h *OrgHandler) ListCategories(c *gin.Context) {
	cats, err := h.orgSvc.ListCategories(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": cats})
}

// ListPositionHierarchy 직급 체계 조회
// GET /api/v1/org/position-hierarchy
func (h *OrgHandler) ListPositionHierarchy(c *gin.Context) {
	rows, err := h.orgSvc.ListPositionHierarchy(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rows})
}

// UpsertPositionHierarchy 직급 체계 일괄 갱신
// PUT /api/v1/org/position-hierarchy
func (h *OrgHandler) UpsertPositionHierarchy(c *gin.Context) {
	var req dto.UpsertPositionHierarchyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "positions 배열이 필요합니다")
		return
	}

	if err := h.orgSvc.UpsertPositionHierarchy(c.Request.Context(), &req); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
