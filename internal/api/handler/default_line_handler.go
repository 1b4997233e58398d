package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/service"
	"github.com/erurang/wooyangcrm-backend/pkg/response"
)

// DefaultLineHandler 기본 결재선 설정 HTTP 처리기 (관리자용)
type DefaultLineHandler struct {
	lineSvc service.DefaultLineService
}

// NewDefaultLineHandler DefaultLineHandler 생성
func NewDefaultLineHandler(lineSvc service.DefaultLineService) *DefaultLineHandler {
	return &DefaultLineHandler{lineSvc: lineSvc}
}

// ListDefaultLines 기본 결재선 목록 조회
// GET /api/v1/admin/approvals/default-lines
func (h *DefaultLineHandler) ListDefaultLines(c *gin.Context) {
	var req dto.DefaultLineListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	result, err := h.lineSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CreateDefaultLine 기본 결재선 추가
// POST /api/v1/admin/approvals/default-lines
func (h *DefaultLineHandler) CreateDefaultLine(c *gin.Context) {
	var req dto.CreateDefaultLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "category_id, approver_type, approver_value는 필수입니다")
		return
	}

	line, err := h.lineSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDefaultLineError(c, err)
		return
	}

	response.Created(c, line)
}

// BulkUpdateDefaultLines 한 범위의 결재선 일괄 교체
// PUT /api/v1/admin/approvals/default-lines
func (h *DefaultLineHandler) BulkUpdateDefaultLines(c *gin.Context) {
	var req dto.BulkUpdateDefaultLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "category_id와 lines 배열은 필수입니다")
		return
	}

	if err := h.lineSvc.BulkUpdate(c.Request.Context(), &req); err != nil {
		h.handleDefaultLineError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "기본 결재선이 업데이트되었습니다"})
}

// DeleteDefaultLine 기본 결재선 삭제
// DELETE /api/v1/admin/approvals/default-lines/:id
func (h *DefaultLineHandler) DeleteDefaultLine(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "결재선 ID가 필요합니다")
		return
	}

	if err := h.lineSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDefaultLineError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleDefaultLineError 기본 결재선 모듈 업무 에러 → HTTP 매핑
func (h *DefaultLineHandler) handleDefaultLineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidApproverType):
		response.BadRequest(c, 15001, "approver_type은 position, role, user 중 하나여야 합니다")
	case errors.Is(err, service.ErrInvalidLineType):
		response.BadRequest(c, 15002, "line_type은 approval, review, reference 중 하나여야 합니다")
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 15003, "결재 카테고리를 찾을 수 없습니다")
	case errors.Is(err, service.ErrDefaultLineNotFound):
		response.NotFound(c, 15004, "기본 결재선 설정을 찾을 수 없습니다")
	default:
		response.InternalError(c)
	}
}
