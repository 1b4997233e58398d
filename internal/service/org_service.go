package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
	"github.com/erurang/wooyangcrm-backend/pkg/redis"
)

// OrgService 조직 참조 데이터 업무 인터페이스
// 부서/팀/사용자 목록과 직급 체계 관리를 담당한다.
type OrgService interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	ListTeams(ctx context.Context, req *dto.TeamListRequest) ([]model.Team, error)
	ListUsers(ctx context.Context, req *dto.UserListRequest) ([]model.User, error)
	ListCategories(ctx context.Context) ([]model.ApprovalCategory, error)
	ListPositionHierarchy(ctx context.Context) ([]model.PositionHierarchy, error)
	// UpsertPositionHierarchy 직급 레벨 일괄 갱신. 성공 시 직급 캐시를 무효화한다.
	UpsertPositionHierarchy(ctx context.Context, req *dto.UpsertPositionHierarchyRequest) error
}

type orgService struct {
	repo   *repository.Repository
	cache  *redis.Client // nil 허용
	logger *zap.Logger
}

// NewOrgService OrgService 인스턴스 생성
func NewOrgService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) OrgService {
	return &orgService{repo: repo, cache: cache, logger: logger}
}

func (s *orgService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("부서 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	return depts, nil
}

func (s *orgService) ListTeams(ctx context.Context, req *dto.TeamListRequest) ([]model.Team, error) {
	teams, err := s.repo.Team.List(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("팀 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	return teams, nil
}

func (s *orgService) ListUsers(ctx context.Context, req *dto.UserListRequest) ([]model.User, error) {
	users, err := s.repo.User.List(ctx, req.TeamID, req.Position)
	if err != nil {
		s.logger.Error("사용자 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *orgService) ListCategories(ctx context.Context) ([]model.ApprovalCategory, error) {
	cats, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("결재 카테고리 목록 조회 실패", zap.Error(err))
		return nil, err
	}
	return cats, nil
}

func (s *orgService) ListPositionHierarchy(ctx context.Context) ([]model.PositionHierarchy, error) {
	rows, err := s.repo.PositionHierarchy.List(ctx)
	if err != nil {
		s.logger.Error("직급 체계 조회 실패", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *orgService) UpsertPositionHierarchy(ctx context.Context, req *dto.UpsertPositionHierarchyRequest) error {
	entries := make([]model.PositionHierarchy, 0, len(req.Positions))
	for _, p := range req.Positions {
		entries = append(entries, model.PositionHierarchy{
			PositionName:   p.PositionName,
			HierarchyLevel: p.HierarchyLevel,
		})
	}

	if err := s.repo.PositionHierarchy.BulkUpsert(ctx, entries); err != nil {
		s.logger.Error("직급 체계 갱신 실패", zap.Error(err))
		return err
	}

	// 리졸버가 참조하는 직급 캐시 무효화
	if s.cache != nil {
		if err := s.cache.InvalidatePositionLevels(ctx); err != nil {
			s.logger.Warn("직급 캐시 무효화 실패", zap.Error(err))
		}
	}
	return nil
}
