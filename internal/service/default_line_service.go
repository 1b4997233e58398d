package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
)

// ── 기본 결재선 설정 업무 에러 ──

var (
	ErrDefaultLineNotFound    = errors.New("기본 결재선 설정을 찾을 수 없습니다")
	ErrInvalidApproverType    = errors.New("approver_type은 position, role, user 중 하나여야 합니다")
	ErrInvalidLineType        = errors.New("line_type은 approval, review, reference 중 하나여야 합니다")
	ErrCategoryNotFound       = errors.New("결재 카테고리를 찾을 수 없습니다")
)

// DefaultLineService 기본 결재선 설정 업무 인터페이스 (관리자용)
type DefaultLineService interface {
	List(ctx context.Context, req *dto.DefaultLineListRequest) (*dto.DefaultLineListResponse, error)
	Create(ctx context.Context, req *dto.CreateDefaultLineRequest) (*model.DefaultApprovalLine, error)
	// BulkUpdate 한 범위(카테고리+팀+부서)의 결재선을 통째로 교체 (순서 변경 등)
	BulkUpdate(ctx context.Context, req *dto.BulkUpdateDefaultLinesRequest) error
	Delete(ctx context.Context, id string) error
}

type defaultLineService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDefaultLineService DefaultLineService 인스턴스 생성
func NewDefaultLineService(repo *repository.Repository, logger *zap.Logger) DefaultLineService {
	return &defaultLineService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *defaultLineService) List(ctx context.Context, req *dto.DefaultLineListRequest) (*dto.DefaultLineListResponse, error) {
	lines, err := s.repo.DefaultLine.List(ctx, req.CategoryID, req.TeamID)
	if err != nil {
		s.logger.Error("기본 결재선 목록 조회 실패", zap.Error(err))
		return nil, err
	}

	// 카테고리별 그룹화 (등장 순서 유지)
	groups := make(map[string]*dto.DefaultLineGroup)
	var order []string
	for _, line := range lines {
		g, ok := groups[line.CategoryID]
		if !ok {
			g = &dto.DefaultLineGroup{Category: line.Category}
			groups[line.CategoryID] = g
			order = append(order, line.CategoryID)
		}
		g.Lines = append(g.Lines, line)
	}

	grouped := make([]dto.DefaultLineGroup, 0, len(order))
	for _, id := range order {
		grouped = append(grouped, *groups[id])
	}

	return &dto.DefaultLineListResponse{Data: lines, Grouped: grouped}, nil
}

// ────────────────────── Create ──────────────────────

func (s *defaultLineService) Create(ctx context.Context, req *dto.CreateDefaultLineRequest) (*model.DefaultApprovalLine, error) {
	if !model.IsValidApproverType(req.ApproverType) {
		return nil, ErrInvalidApproverType
	}
	lineType := req.LineType
	if lineType == "" {
		lineType = model.LineTypeApproval
	}
	if !model.IsValidLineType(lineType) {
		return nil, ErrInvalidLineType
	}

	if _, err := s.repo.Category.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("카테고리 조회 실패", zap.String("category_id", req.CategoryID), zap.Error(err))
		return nil, err
	}

	// line_order 미지정 시 같은 범위의 마지막 순번 + 1
	lineOrder := req.LineOrder
	if lineOrder <= 0 {
		max, err := s.repo.DefaultLine.MaxLineOrder(ctx, req.CategoryID, req.TeamID, req.DepartmentID)
		if err != nil {
			s.logger.Error("결재선 순번 조회 실패", zap.Error(err))
			return nil, err
		}
		lineOrder = max + 1
	}

	isRequired := true
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}

	line := &model.DefaultApprovalLine{
		CategoryID:    req.CategoryID,
		TeamID:        req.TeamID,
		DepartmentID:  req.DepartmentID,
		ApproverType:  req.ApproverType,
		ApproverValue: req.ApproverValue,
		LineType:      lineType,
		LineOrder:     lineOrder,
		IsRequired:    isRequired,
	}

	if err := s.repo.DefaultLine.Create(ctx, line); err != nil {
		s.logger.Error("기본 결재선 생성 실패", zap.Error(err))
		return nil, err
	}

	return line, nil
}

// ────────────────────── BulkUpdate ──────────────────────

func (s *defaultLineService) BulkUpdate(ctx context.Context, req *dto.BulkUpdateDefaultLinesRequest) error {
	lines := make([]model.DefaultApprovalLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if !model.IsValidApproverType(l.ApproverType) {
			return ErrInvalidApproverType
		}
		lineType := l.LineType
		if lineType == "" {
			lineType = model.LineTypeApproval
		}
		if !model.IsValidLineType(lineType) {
			return ErrInvalidLineType
		}
		isRequired := true
		if l.IsRequired != nil {
			isRequired = *l.IsRequired
		}
		lines = append(lines, model.DefaultApprovalLine{
			CategoryID:    req.CategoryID,
			TeamID:        req.TeamID,
			DepartmentID:  req.DepartmentID,
			ApproverType:  l.ApproverType,
			ApproverValue: l.ApproverValue,
			LineType:      lineType,
			LineOrder:     l.LineOrder,
			IsRequired:    isRequired,
		})
	}

	if err := s.repo.DefaultLine.ReplaceScope(ctx, req.CategoryID, req.TeamID, req.DepartmentID, lines); err != nil {
		s.logger.Error("기본 결재선 일괄 교체 실패",
			zap.String("category_id", req.CategoryID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *defaultLineService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DefaultLine.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDefaultLineNotFound
		}
		return err
	}
	if err := s.repo.DefaultLine.Delete(ctx, id); err != nil {
		s.logger.Error("기본 결재선 삭제 실패", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
