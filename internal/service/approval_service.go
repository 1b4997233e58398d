package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
)

// ── 결재 모듈 업무 에러 ──

var (
	ErrApprovalNotFound       = errors.New("결재 문서를 찾을 수 없습니다")
	ErrApprovalLinesRequired  = errors.New("결재선을 설정해주세요")
	ErrApprovalNotPending     = errors.New("진행 중인 결재만 처리할 수 있습니다")
	ErrApprovalNoAuthority    = errors.New("결재 권한이 없거나 이미 처리된 결재입니다")
	ErrRejectCommentRequired  = errors.New("반려 사유를 입력해주세요")
	ErrDelegateTargetRequired = errors.New("위임 대상(delegated_to)이 필요합니다")
	ErrDelegateTargetNotFound = errors.New("위임 대상 사용자를 찾을 수 없습니다")
	ErrWithdrawNotRequester   = errors.New("기안자만 회수할 수 있습니다")
	ErrInvalidAction          = errors.New("유효하지 않은 action입니다")
)

// ── 결재 액션 ──

const (
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionDelegate = "delegate"
	ActionWithdraw = "withdraw"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ApprovalService 결재 요청 업무 인터페이스
type ApprovalService interface {
	Create(ctx context.Context, req *dto.CreateApprovalRequest) (*model.ApprovalRequest, error)
	List(ctx context.Context, req *dto.ApprovalListRequest) (*dto.ApprovalListResponse, error)
	GetByID(ctx context.Context, id string) (*model.ApprovalRequest, error)
	Action(ctx context.Context, requestID string, req *dto.ApprovalActionRequest) (*dto.ApprovalActionResponse, error)
	Statistics(ctx context.Context, req *dto.StatisticsRequest) (*dto.StatisticsResponse, error)
}

type approvalService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 테스트에서 시각 고정용
}

// NewApprovalService ApprovalService 인스턴스 생성
func NewApprovalService(repo *repository.Repository, logger *zap.Logger) ApprovalService {
	return &approvalService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *approvalService) Create(ctx context.Context, req *dto.CreateApprovalRequest) (*model.ApprovalRequest, error) {
	if !req.IsDraft && len(req.Lines) == 0 {
		return nil, ErrApprovalLinesRequired
	}

	now := s.now()

	docNumber, err := s.nextDocumentNumber(ctx, now.Year())
	if err != nil {
		s.logger.Error("문서번호 채번 실패", zap.Error(err))
		return nil, err
	}

	request := &model.ApprovalRequest{
		DocumentNumber:   docNumber,
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Content:          req.Content,
		RequesterID:      req.RequesterID,
		RequesterTeamID:  req.RequesterTeamID,
		Status:           model.RequestStatusPending,
		CurrentLineOrder: 1,
	}
	if req.IsDraft {
		request.Status = model.RequestStatusDraft
	} else {
		request.SubmittedAt = &now
	}

	lines := make([]model.ApprovalLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lineType := l.LineType
		if lineType == "" {
			lineType = model.LineTypeApproval
		}
		isRequired := true
		if l.IsRequired != nil {
			isRequired = *l.IsRequired
		}
		lines = append(lines, model.ApprovalLine{
			ApproverID:   l.ApproverID,
			ApproverTeam: l.ApproverTeam,
			LineType:     lineType,
			LineOrder:    l.LineOrder,
			Status:       model.LineStatusPending,
			IsRequired:   isRequired,
		})
	}

	var history *model.ApprovalHistory
	if !req.IsDraft {
		history = &model.ApprovalHistory{
			UserID:       req.RequesterID,
			Action:       "submitted",
			ActionDetail: "결재 요청 상신",
		}
	}

	if err := s.repo.Approval.CreateWithLines(ctx, request, lines, history); err != nil {
		s.logger.Error("결재 요청 생성 실패",
			zap.String("category_id", req.CategoryID),
			zap.Error(err),
		)
		return nil, err
	}

	return s.repo.Approval.GetByID(ctx, request.RequestID)
}

// nextDocumentNumber 연도별 순번 기반 문서번호 생성 (예: 2026APR00000001)
func (s *approvalService) nextDocumentNumber(ctx context.Context, year int) (string, error) {
	count, err := s.repo.Approval.CountByYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%dAPR%08d", year, count+1), nil
}

// ────────────────────── List ──────────────────────

func (s *approvalService) List(ctx context.Context, req *dto.ApprovalListRequest) (*dto.ApprovalListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	filter := repository.ApprovalListFilter{
		Limit:       limit,
		Offset:      offset,
		Tab:         req.Tab,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
		RequesterID: req.RequesterID,
		ApproverID:  req.ApproverID,
		Keyword:     req.Keyword,
	}
	if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
		end := t.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	// pending/reference 탭은 결재자, requested 탭은 기안자 기준이라 대상 ID가 없으면 빈 목록
	if (req.Tab == "pending" || req.Tab == "reference") && req.ApproverID == "" ||
		req.Tab == "requested" && req.RequesterID == "" {
		return &dto.ApprovalListResponse{
			Data: []model.ApprovalRequest{}, Limit: limit, Page: 1,
		}, nil
	}

	reqs, total, err := s.repo.Approval.List(ctx, filter)
	if err != nil {
		s.logger.Error("결재 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &dto.ApprovalListResponse{
		Data:       reqs,
		Total:      total,
		Page:       offset/limit + 1,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *approvalService) GetByID(ctx context.Context, id string) (*model.ApprovalRequest, error) {
	req, err := s.repo.Approval.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalNotFound
		}
		s.logger.Error("결재 문서 조회 실패", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return req, nil
}

// ────────────────────── Action ──────────────────────

func (s *approvalService) Action(ctx context.Context, requestID string, req *dto.ApprovalActionRequest) (*dto.ApprovalActionResponse, error) {
	request, err := s.repo.Approval.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalNotFound
		}
		s.logger.Error("결재 문서 조회 실패", zap.String("id", requestID), zap.Error(err))
		return nil, err
	}

	switch req.Action {
	case ActionApprove:
		return s.approve(ctx, request, req.UserID, req.Comment)
	case ActionReject:
		return s.reject(ctx, request, req.UserID, req.Comment)
	case ActionDelegate:
		return s.delegate(ctx, request, req.UserID, req.DelegatedTo, req.DelegatedReason)
	case ActionWithdraw:
		return s.withdraw(ctx, request, req.UserID)
	default:
		return nil, ErrInvalidAction
	}
}

// currentPendingLine 현재 순번의 대기 중 결재선 중 본인(또는 위임받은 자) 몫을 찾는다
func currentPendingLine(request *model.ApprovalRequest, userID string) *model.ApprovalLine {
	for i := range request.Lines {
		line := &request.Lines[i]
		if line.LineOrder == request.CurrentLineOrder &&
			line.Status == model.LineStatusPending &&
			(line.ApproverID == userID || (line.DelegatedTo != nil && *line.DelegatedTo == userID)) {
			return line
		}
	}
	return nil
}

func (s *approvalService) approve(ctx context.Context, request *model.ApprovalRequest, userID, comment string) (*dto.ApprovalActionResponse, error) {
	if request.Status != model.RequestStatusPending {
		return nil, ErrApprovalNotPending
	}

	line := currentPendingLine(request, userID)
	if line == nil {
		return nil, ErrApprovalNoAuthority
	}

	now := s.now()
	fields := map[string]interface{}{
		"status":   model.LineStatusApproved,
		"acted_at": now,
	}
	if comment != "" {
		fields["comment"] = comment
	}
	if err := s.repo.Approval.UpdateLine(ctx, line.LineID, fields); err != nil {
		s.logger.Error("결재선 갱신 실패", zap.String("line_id", line.LineID), zap.Error(err))
		return nil, err
	}

	// 다음 결재 차례 확인 (참조/검토는 순번 진행에서 제외)
	var next *model.ApprovalLine
	for i := range request.Lines {
		cand := &request.Lines[i]
		if cand.LineOrder > request.CurrentLineOrder &&
			cand.Status == model.LineStatusPending &&
			cand.LineType == model.LineTypeApproval {
			if next == nil || cand.LineOrder < next.LineOrder {
				next = cand
			}
		}
	}

	var reqFields map[string]interface{}
	if next != nil {
		reqFields = map[string]interface{}{"current_line_order": next.LineOrder}
	} else {
		reqFields = map[string]interface{}{
			"status":       model.RequestStatusApproved,
			"completed_at": now,
		}
	}
	if err := s.repo.Approval.UpdateRequest(ctx, request.RequestID, reqFields); err != nil {
		s.logger.Error("결재 요청 갱신 실패", zap.String("id", request.RequestID), zap.Error(err))
		return nil, err
	}

	detail := "최종 승인"
	if next != nil {
		detail = fmt.Sprintf("%d차 결재 승인", request.CurrentLineOrder)
	}
	s.addHistory(ctx, request.RequestID, userID, "approved", detail)

	msg := "최종 승인되었습니다."
	if next != nil {
		msg = "승인되었습니다."
	}
	return &dto.ApprovalActionResponse{Message: msg, IsFinal: next == nil}, nil
}

func (s *approvalService) reject(ctx context.Context, request *model.ApprovalRequest, userID, comment string) (*dto.ApprovalActionResponse, error) {
	if request.Status != model.RequestStatusPending {
		return nil, ErrApprovalNotPending
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrRejectCommentRequired
	}

	line := currentPendingLine(request, userID)
	if line == nil {
		return nil, ErrApprovalNoAuthority
	}

	now := s.now()
	if err := s.repo.Approval.UpdateLine(ctx, line.LineID, map[string]interface{}{
		"status":   model.LineStatusRejected,
		"comment":  comment,
		"acted_at": now,
	}); err != nil {
		s.logger.Error("결재선 갱신 실패", zap.String("line_id", line.LineID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Approval.UpdateRequest(ctx, request.RequestID, map[string]interface{}{
		"status":       model.RequestStatusRejected,
		"completed_at": now,
	}); err != nil {
		s.logger.Error("결재 요청 갱신 실패", zap.String("id", request.RequestID), zap.Error(err))
		return nil, err
	}

	s.addHistory(ctx, request.RequestID, userID, "rejected", "반려: "+comment)

	return &dto.ApprovalActionResponse{Message: "반려되었습니다."}, nil
}

func (s *approvalService) delegate(ctx context.Context, request *model.ApprovalRequest, userID, delegatedTo, reason string) (*dto.ApprovalActionResponse, error) {
	if request.Status != model.RequestStatusPending {
		return nil, ErrApprovalNotPending
	}
	if delegatedTo == "" {
		return nil, ErrDelegateTargetRequired
	}

	target, err := s.repo.User.GetByID(ctx, delegatedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDelegateTargetNotFound
		}
		return nil, err
	}

	line := currentPendingLine(request, userID)
	if line == nil {
		return nil, ErrApprovalNoAuthority
	}

	fields := map[string]interface{}{"delegated_to": delegatedTo}
	if reason != "" {
		fields["delegated_reason"] = reason
	}
	if err := s.repo.Approval.UpdateLine(ctx, line.LineID, fields); err != nil {
		s.logger.Error("결재선 갱신 실패", zap.String("line_id", line.LineID), zap.Error(err))
		return nil, err
	}

	s.addHistory(ctx, request.RequestID, userID, "delegated", target.Name+"에게 위임")

	return &dto.ApprovalActionResponse{Message: target.Name + "님에게 위임되었습니다."}, nil
}

func (s *approvalService) withdraw(ctx context.Context, request *model.ApprovalRequest, userID string) (*dto.ApprovalActionResponse, error) {
	if request.Status != model.RequestStatusPending {
		return nil, ErrApprovalNotPending
	}
	if request.RequesterID != userID {
		return nil, ErrWithdrawNotRequester
	}

	now := s.now()
	if err := s.repo.Approval.UpdateRequest(ctx, request.RequestID, map[string]interface{}{
		"status":       model.RequestStatusWithdrawn,
		"completed_at": now,
	}); err != nil {
		s.logger.Error("결재 요청 갱신 실패", zap.String("id", request.RequestID), zap.Error(err))
		return nil, err
	}

	s.addHistory(ctx, request.RequestID, userID, "withdrawn", "기안자 회수")

	return &dto.ApprovalActionResponse{Message: "회수되었습니다."}, nil
}

// addHistory 이력 기록. 실패해도 본 처리는 계속한다.
func (s *approvalService) addHistory(ctx context.Context, requestID, userID, action, detail string) {
	h := &model.ApprovalHistory{
		RequestID:    requestID,
		UserID:       userID,
		Action:       action,
		ActionDetail: detail,
	}
	if err := s.repo.Approval.AddHistory(ctx, h); err != nil {
		s.logger.Warn("결재 이력 기록 실패",
			zap.String("request_id", requestID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// ────────────────────── Statistics ──────────────────────

func (s *approvalService) Statistics(ctx context.Context, req *dto.StatisticsRequest) (*dto.StatisticsResponse, error) {
	now := s.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	requesterID := ""
	if req.Scope == "my" && req.UserID != "" {
		requesterID = req.UserID
	}

	rows, err := s.repo.Approval.ListCreatedSince(ctx, since, requesterID)
	if err != nil {
		s.logger.Error("결재 통계 조회 실패", zap.Error(err))
		return nil, err
	}

	// 1. 월별 추이 (최근 6개월, 빈 달 포함)
	monthly := make([]dto.MonthlyStat, 0, 6)
	monthIndex := make(map[string]int, 6)
	for i := 5; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		key := m.Format("2006-01")
		monthIndex[key] = len(monthly)
		monthly = append(monthly, dto.MonthlyStat{Month: key})
	}

	// 2. 카테고리별 통계
	catStats := make(map[string]*dto.CategoryStat)
	var catOrder []string

	// 3. 처리 시간 (완료 문서 기준)
	var procTime dto.ProcessingTimeStat
	var totalHours float64

	for _, row := range rows {
		if idx, ok := monthIndex[row.CreatedAt.Format("2006-01")]; ok {
			switch row.Status {
			case model.RequestStatusApproved:
				monthly[idx].Approved++
			case model.RequestStatusRejected:
				monthly[idx].Rejected++
			case model.RequestStatusPending:
				monthly[idx].Pending++
			}
		}

		cs, ok := catStats[row.CategoryID]
		if !ok {
			cs = &dto.CategoryStat{CategoryID: row.CategoryID}
			if row.Category != nil {
				cs.CategoryName = row.Category.Name
			}
			catStats[row.CategoryID] = cs
			catOrder = append(catOrder, row.CategoryID)
		}
		cs.Count++
		switch row.Status {
		case model.RequestStatusApproved:
			cs.Approved++
		case model.RequestStatusRejected:
			cs.Rejected++
		case model.RequestStatusPending:
			cs.Pending++
		}

		if row.CompletedAt != nil {
			hours := row.CompletedAt.Sub(row.CreatedAt).Hours()
			if procTime.TotalCompleted == 0 || hours < procTime.MinHours {
				procTime.MinHours = hours
			}
			if hours > procTime.MaxHours {
				procTime.MaxHours = hours
			}
			totalHours += hours
			procTime.TotalCompleted++
		}
	}
	if procTime.TotalCompleted > 0 {
		procTime.AvgHours = totalHours / float64(procTime.TotalCompleted)
	}

	categories := make([]dto.CategoryStat, 0, len(catOrder))
	for _, id := range catOrder {
		categories = append(categories, *catStats[id])
	}

	return &dto.StatisticsResponse{
		Monthly:        monthly,
		Categories:     categories,
		ProcessingTime: procTime,
	}, nil
}
