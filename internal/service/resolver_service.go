package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
	"github.com/erurang/wooyangcrm-backend/pkg/redis"
)

// ── 자동 결재선 결정 업무 에러 ──

var (
	ErrResolveInvalidInput = errors.New("category_id와 requester_id는 필수입니다")
	ErrRequesterNotFound   = errors.New("기안자 정보를 찾을 수 없습니다")
	ErrDefaultLineFetch    = errors.New("기본 결재선 정보를 조회할 수 없습니다")
)

// teamLeadLabel "팀장"은 저장된 직급이 아니라 팀 구성으로 추론하는 역할 라벨이다.
const teamLeadLabel = "팀장"

// teamLeadRanks 팀장 추론 후보 직급과 우선순위 (값이 클수록 우선)
// 후보는 이 닫힌 집합으로 한정하며, 팀 밖으로 탐색을 확장하지 않는다.
var teamLeadRanks = map[string]int{
	"부장": 3,
	"차장": 2,
	"과장": 1,
}

// ResolverService 자동 결재선 결정 업무 인터페이스
// 기안자의 직급/팀을 기반으로 기본 결재선 설정을 실제 결재자 목록으로 변환한다.
// 읽기 전용이라 조직 데이터가 변하지 않는 한 같은 입력에 항상 같은 출력을 낸다.
type ResolverService interface {
	Resolve(ctx context.Context, categoryID, requesterID string) (*dto.ResolveLinesResponse, error)
}

type resolverService struct {
	repo   *repository.Repository
	cache  *redis.Client // nil 허용: 캐시 없이 DB 직접 조회
	logger *zap.Logger
}

// NewResolverService ResolverService 인스턴스 생성
func NewResolverService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ResolverService {
	return &resolverService{repo: repo, cache: cache, logger: logger}
}

func (s *resolverService) Resolve(ctx context.Context, categoryID, requesterID string) (*dto.ResolveLinesResponse, error) {
	if categoryID == "" || requesterID == "" {
		return nil, ErrResolveInvalidInput
	}

	// 1. 기안자 정보 조회 (팀/부서 포함)
	requester, err := s.repo.User.GetByIDWithOrg(ctx, requesterID)
	if err != nil {
		s.logger.Warn("기안자 조회 실패",
			zap.String("requester_id", requesterID),
			zap.Error(err),
		)
		return nil, ErrRequesterNotFound
	}

	var teamName, departmentID, departmentName string
	if requester.Team != nil {
		teamName = requester.Team.Name
		departmentID = requester.Team.DepartmentID
		if requester.Team.Department != nil {
			departmentName = requester.Team.Department.Name
		}
	}

	// 2. 직급 체계 조회
	// 조회 실패는 치명적이지 않다: 빈 맵으로 진행하면 모든 대상 레벨이 0이 되어
	// 서열 필터만 비활성화된다.
	levelMap := s.loadLevelMap(ctx)

	// 기안자 레벨: 미등록 직급은 1로 간주 (대상 직급의 기본값 0과 다름 — 의도된 비대칭)
	requesterLevel, ok := levelMap[requester.Position]
	if !ok {
		requesterLevel = 1
	}

	// 3. 해당 카테고리의 기본 결재선 조회
	templates, err := s.repo.DefaultLine.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("기본 결재선 조회 실패",
			zap.String("category_id", categoryID),
			zap.Error(err),
		)
		return nil, ErrDefaultLineFetch
	}

	// 4. 범위 필터링: 팀 > 부서 > 전체 우선순위로 한 그룹만 선택 (범위 간 병합 없음)
	effective := selectScopeGroup(templates, requester.TeamID, departmentID)

	// 5. 각 결재선에 대해 실제 결재자 결정
	resolved := make([]dto.ResolvedLine, 0, len(effective))

	for _, line := range effective {
		// 기안자보다 직급이 같거나 낮은 결재자는 스킵 (레벨 0 = 서열 없음은 스킵 대상 아님)
		targetLevel := levelMap[line.ApproverValue]
		if targetLevel > 0 && targetLevel <= requesterLevel {
			continue
		}

		approver := s.findApprover(ctx, line.ApproverType, line.ApproverValue, requester.TeamID, departmentID)

		// 결재자를 찾지 못한 결재선은 조용히 제외한다. 규칙 하나가 깨져도
		// 전체 결재선 생성은 막지 않는다. 자기 자신도 항상 제외.
		if approver == nil || approver.UserID == requester.UserID {
			continue
		}

		var approverTeam string
		if approver.Team != nil {
			approverTeam = approver.Team.Name
		}

		resolved = append(resolved, dto.ResolvedLine{
			ApproverID:       approver.UserID,
			ApproverName:     approver.Name,
			ApproverPosition: approver.Position,
			ApproverTeam:     approverTeam,
			LineType:         line.LineType,
			LineOrder:        len(resolved) + 1, // 출력 순서 기준 재부여
			IsRequired:       line.IsRequired,
		})
	}

	return &dto.ResolveLinesResponse{
		Lines: resolved,
		Requester: dto.ResolveRequesterSummary{
			ID:         requester.UserID,
			Name:       requester.Name,
			Position:   requester.Position,
			Team:       teamName,
			Department: departmentName,
		},
	}, nil
}

// loadLevelMap 직급 체계를 라벨→레벨 맵으로 로드. 캐시 우선, 실패 시 빈 맵.
func (s *resolverService) loadLevelMap(ctx context.Context) map[string]int {
	if s.cache != nil {
		if m, ok := s.cache.GetPositionLevels(ctx); ok {
			return m
		}
	}

	m, err := s.repo.PositionHierarchy.LevelMap(ctx)
	if err != nil {
		s.logger.Warn("직급 체계 조회 실패, 서열 필터 없이 진행", zap.Error(err))
		return map[string]int{}
	}

	if s.cache != nil {
		if err := s.cache.SetPositionLevels(ctx, m); err != nil {
			s.logger.Warn("직급 체계 캐시 저장 실패", zap.Error(err))
		}
	}
	return m
}

// selectScopeGroup 팀 특정 > 부서 특정 > 전사 순으로 단 하나의 그룹을 선택한다.
// 좁은 범위가 있으면 넓은 범위를 완전히 대체한다.
func selectScopeGroup(templates []model.DefaultApprovalLine, teamID *string, departmentID string) []model.DefaultApprovalLine {
	var teamLines, deptLines, globalLines []model.DefaultApprovalLine

	for _, line := range templates {
		switch {
		case line.TeamID != nil && teamID != nil && *line.TeamID == *teamID:
			teamLines = append(teamLines, line)
		case line.TeamID == nil && line.DepartmentID != nil && departmentID != "" && *line.DepartmentID == departmentID:
			deptLines = append(deptLines, line)
		case line.TeamID == nil && line.DepartmentID == nil:
			globalLines = append(globalLines, line)
		}
	}

	if len(teamLines) > 0 {
		return teamLines
	}
	if len(deptLines) > 0 {
		return deptLines
	}
	return globalLines
}

// findApprover approver_type 에 따라 실제 결재자를 탐색한다.
// 모든 조회 실패는 소프트 실패: nil 을 반환하고 해당 결재선만 제외된다.
func (s *resolverService) findApprover(ctx context.Context, approverType, approverValue string, teamID *string, departmentID string) *model.User {
	switch approverType {
	case model.ApproverTypePosition:
		return s.findApproverByPosition(ctx, approverValue, teamID, departmentID)
	case model.ApproverTypeRole:
		user, err := s.repo.User.FindByRole(ctx, approverValue)
		if err != nil {
			return nil
		}
		return user
	case model.ApproverTypeUser:
		user, err := s.repo.User.GetByID(ctx, approverValue)
		if err != nil {
			return nil
		}
		return user
	default:
		s.logger.Warn("알 수 없는 approver_type", zap.String("approver_type", approverType))
		return nil
	}
}

// findApproverByPosition 직급 기반 결재자 탐색.
// 같은 팀 → 같은 부서 → 전체 순으로 좁혀가며 첫 매칭에서 탐색을 멈춘다.
func (s *resolverService) findApproverByPosition(ctx context.Context, targetPosition string, teamID *string, departmentID string) *model.User {
	// 팀장은 특수 처리: 팀 구성에서 추론하며 부서/전체로 확대하지 않는다
	if targetPosition == teamLeadLabel {
		return s.inferTeamLead(ctx, teamID)
	}

	// 1. 같은 팀에서 해당 직급자 찾기
	if teamID != nil {
		if user, err := s.repo.User.FindByPositionInTeam(ctx, targetPosition, *teamID); err == nil {
			return user
		}
	}

	// 2. 같은 부서에서 해당 직급자 찾기
	if departmentID != "" {
		if user, err := s.repo.User.FindByPositionInDepartment(ctx, targetPosition, departmentID); err == nil {
			return user
		}
	}

	// 3. 전체에서 해당 직급자 찾기 (사업장장, 대표 등 고위직)
	if user, err := s.repo.User.FindByPosition(ctx, targetPosition); err == nil {
		return user
	}

	return nil
}

// inferTeamLead 팀 내 teamLeadRanks 후보 중 최상위 직급자를 팀장으로 간주한다.
// 후보가 없으면 nil (해당 결재선은 제외된다).
func (s *resolverService) inferTeamLead(ctx context.Context, teamID *string) *model.User {
	if teamID == nil {
		return nil
	}

	positions := make([]string, 0, len(teamLeadRanks))
	for p := range teamLeadRanks {
		positions = append(positions, p)
	}

	candidates, err := s.repo.User.ListByTeamWithPositions(ctx, *teamID, positions)
	if err != nil || len(candidates) == 0 {
		return nil
	}

	best := &candidates[0]
	for i := 1; i < len(candidates); i++ {
		if teamLeadRanks[candidates[i].Position] > teamLeadRanks[best.Position] {
			best = &candidates[i]
		}
	}
	return best
}
