package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/model"
)

// UserRepository 사용자 데이터 접근 인터페이스
// 결재자 탐색 계열(FindBy*)은 일대일 조인 결과를 항상 단일 레코드로 정규화해 돌려준다.
// 매칭이 없으면 gorm.ErrRecordNotFound 를 반환한다.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByIDWithOrg 팀/부서까지 함께 조회 (기안자 프로필용)
	GetByIDWithOrg(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, teamID, position string) ([]model.User, error)

	// ── 결재자 탐색 ──
	FindByPositionInTeam(ctx context.Context, position, teamID string) (*model.User, error)
	FindByPositionInDepartment(ctx context.Context, position, departmentID string) (*model.User, error)
	FindByPosition(ctx context.Context, position string) (*model.User, error)
	FindByRole(ctx context.Context, role string) (*model.User, error)
	// ListByTeamWithPositions 팀 내에서 주어진 직급 목록에 해당하는 사용자 조회 (팀장 추론용)
	ListByTeamWithPositions(ctx context.Context, teamID string, positions []string) ([]model.User, error)
}

// userRepo UserRepository 의 GORM 구현
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo UserRepository 인스턴스 생성
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDWithOrg(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Team.Department").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, teamID, position string) ([]model.User, error) {
	q := r.db.WithContext(ctx).Preload("Team")
	if teamID != "" {
		q = q.Where("team_id = ?", teamID)
	}
	if position != "" {
		q = q.Where("position = ?", position)
	}
	var users []model.User
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FindByPositionInTeam(ctx context.Context, position, teamID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("team_id = ? AND position = ?", teamID, position).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByPositionInDepartment(ctx context.Context, position, departmentID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Joins("JOIN teams ON teams.team_id = users.team_id").
		Where("teams.department_id = ? AND users.position = ?", departmentID, position).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByPosition(ctx context.Context, position string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("position = ?", position).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByRole(ctx context.Context, role string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("role = ?", role).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByTeamWithPositions(ctx context.Context, teamID string, positions []string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("team_id = ? AND position IN ?", teamID, positions).
		Find(&users).Error
	return users, err
}
