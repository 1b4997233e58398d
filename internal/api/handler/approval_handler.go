package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/service"
	"github.com/erurang/wooyangcrm-backend/pkg/response"
)

// ApprovalHandler 결재 모듈 HTTP 처리기
type ApprovalHandler struct {
	resolverSvc service.ResolverService
	approvalSvc service.ApprovalService
	exportSvc   service.ExportService
}

// NewApprovalHandler ApprovalHandler 생성
func NewApprovalHandler(resolverSvc service.ResolverService, approvalSvc service.ApprovalService, exportSvc service.ExportService) *ApprovalHandler {
	return &ApprovalHandler{
		resolverSvc: resolverSvc,
		approvalSvc: approvalSvc,
		exportSvc:   exportSvc,
	}
}

// ResolveLines 자동 결재선 결정
// POST /api/v1/approvals/resolve-lines
func (h *ApprovalHandler) ResolveLines(c *gin.Context) {
	var req dto.ResolveLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "category_id와 requester_id는 필수입니다")
		return
	}

	result, err := h.resolverSvc.Resolve(c.Request.Context(), req.CategoryID, req.RequesterID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResolveInvalidInput):
			response.BadRequest(c, 14001, err.Error())
		case errors.Is(err, service.ErrRequesterNotFound):
			response.NotFound(c, 14002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// CreateApproval 결재 요청 생성
// POST /api/v1/approvals
func (h *ApprovalHandler) CreateApproval(c *gin.Context) {
	var req dto.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	result, err := h.approvalSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleApprovalError(c, err)
		return
	}

	response.Created(c, result)
}

// ListApprovals 결재 목록 조회
// GET /api/v1/approvals
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	var req dto.ApprovalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	result, err := h.approvalSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetApproval 결재 문서 상세 조회
// GET /api/v1/approvals/:id
func (h *ApprovalHandler) GetApproval(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "문서 ID가 필요합니다")
		return
	}

	result, err := h.approvalSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleApprovalError(c, err)
		return
	}

	response.OK(c, result)
}

// ApprovalAction 결재 액션 처리 (승인/반려/위임/회수)
// POST /api/v1/approvals/:id/action
func (h *ApprovalHandler) ApprovalAction(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "문서 ID가 필요합니다")
		return
	}

	var req dto.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "action과 user_id가 필요합니다")
		return
	}

	result, err := h.approvalSvc.Action(c.Request.Context(), id, &req)
	if err != nil {
		h.handleApprovalError(c, err)
		return
	}

	response.OK(c, result)
}

// GetStatistics 결재 통계 조회
// GET /api/v1/approvals/statistics
func (h *ApprovalHandler) GetStatistics(c *gin.Context) {
	var req dto.StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	// scope=my 인데 user_id 가 없으면 인증된 사용자 기준
	if req.Scope == "my" && req.UserID == "" {
		uid, ok := MustGetUserID(c)
		if !ok {
			return
		}
		req.UserID = uid
	}

	result, err := h.approvalSvc.Statistics(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportApprovals 결재 목록 Excel 다운로드
// GET /api/v1/approvals/export
func (h *ApprovalHandler) ExportApprovals(c *gin.Context) {
	var req dto.ApprovalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "파라미터 검증에 실패했습니다")
		return
	}

	buf, filename, err := h.exportSvc.ExportApprovals(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoData):
			response.NotFound(c, 14010, "내보낼 결재 문서가 없습니다")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

// handleApprovalError 결재 모듈 업무 에러 → HTTP 매핑
func (h *ApprovalHandler) handleApprovalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApprovalNotFound):
		response.NotFound(c, 14003, "결재 문서를 찾을 수 없습니다")
	case errors.Is(err, service.ErrApprovalLinesRequired):
		response.BadRequest(c, 14004, "결재선을 설정해주세요")
	case errors.Is(err, service.ErrApprovalNotPending):
		response.BadRequest(c, 14005, "진행 중인 결재만 처리할 수 있습니다")
	case errors.Is(err, service.ErrApprovalNoAuthority):
		response.Forbidden(c, 14006, "결재 권한이 없거나 이미 처리된 결재입니다")
	case errors.Is(err, service.ErrRejectCommentRequired):
		response.BadRequest(c, 14007, "반려 사유를 입력해주세요")
	case errors.Is(err, service.ErrDelegateTargetRequired):
		response.BadRequest(c, 14008, "위임 대상(delegated_to)이 필요합니다")
	case errors.Is(err, service.ErrDelegateTargetNotFound):
		response.NotFound(c, 14009, "위임 대상 사용자를 찾을 수 없습니다")
	case errors.Is(err, service.ErrWithdrawNotRequester):
		response.Forbidden(c, 14011, "기안자만 회수할 수 있습니다")
	case errors.Is(err, service.ErrInvalidAction):
		response.BadRequest(c, 14012, "유효하지 않은 action입니다")
	default:
		response.InternalError(c)
	}
}
