package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/model"
)

// ApprovalCategoryRepository 결재 문서 유형 데이터 접근 인터페이스
type ApprovalCategoryRepository interface {
	GetByID(ctx context.Context, id string) (*model.ApprovalCategory, error)
	List(ctx context.Context) ([]model.ApprovalCategory, error)
}

// DefaultApprovalLineRepository 기본 결재선 설정 데이터 접근 인터페이스
type DefaultApprovalLineRepository interface {
	// ListByCategory 카테고리의 전체 설정을 line_order 오름차순으로 조회 (리졸버용)
	ListByCategory(ctx context.Context, categoryID string) ([]model.DefaultApprovalLine, error)
	// List 관리 화면용 목록 (카테고리/팀/부서 관계 포함)
	List(ctx context.Context, categoryID, teamID string) ([]model.DefaultApprovalLine, error)
	GetByID(ctx context.Context, id string) (*model.DefaultApprovalLine, error)
	Create(ctx context.Context, line *model.DefaultApprovalLine) error
	// MaxLineOrder 같은 범위(카테고리+팀+부서) 내 최대 순번. 없으면 0.
	MaxLineOrder(ctx context.Context, categoryID string, teamID, departmentID *string) (int, error)
	// ReplaceScope 한 범위의 결재선을 트랜잭션으로 전부 교체
	ReplaceScope(ctx context.Context, categoryID string, teamID, departmentID *string, lines []model.DefaultApprovalLine) error
	Delete(ctx context.Context, id string) error
}

// ── ApprovalCategory ──

type approvalCategoryRepo struct {
	db *gorm.DB
}

// NewApprovalCategoryRepo ApprovalCategoryRepository 인스턴스 생성
func NewApprovalCategoryRepo(db *gorm.DB) ApprovalCategoryRepository {
	return &approvalCategoryRepo{db: db}
}

func (r *approvalCategoryRepo) GetByID(ctx context.Context, id string) (*model.ApprovalCategory, error) {
	var cat model.ApprovalCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *approvalCategoryRepo) List(ctx context.Context) ([]model.ApprovalCategory, error) {
	var cats []model.ApprovalCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&cats).Error
	return cats, err
}

// ── DefaultApprovalLine ──

type defaultApprovalLineRepo struct {
	db *gorm.DB
}

// NewDefaultApprovalLineRepo DefaultApprovalLineRepository 인스턴스 생성
func NewDefaultApprovalLineRepo(db *gorm.DB) DefaultApprovalLineRepository {
	return &defaultApprovalLineRepo{db: db}
}

func (r *defaultApprovalLineRepo) ListByCategory(ctx context.Context, categoryID string) ([]model.DefaultApprovalLine, error) {
	var lines []model.DefaultApprovalLine
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("line_order ASC").
		Find(&lines).Error
	return lines, err
}

func (r *defaultApprovalLineRepo) List(ctx context.Context, categoryID, teamID string) ([]model.DefaultApprovalLine, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Team").
		Preload("Department")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if teamID != "" {
		q = q.Where("team_id = ?", teamID)
	}
	var lines []model.DefaultApprovalLine
	err := q.Order("category_id ASC").Order("line_order ASC").Find(&lines).Error
	return lines, err
}

func (r *defaultApprovalLineRepo) GetByID(ctx context.Context, id string) (*model.DefaultApprovalLine, error) {
	var line model.DefaultApprovalLine
	err := r.db.WithContext(ctx).
		Where("line_id = ?", id).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *defaultApprovalLineRepo) Create(ctx context.Context, line *model.DefaultApprovalLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *defaultApprovalLineRepo) MaxLineOrder(ctx context.Context, categoryID string, teamID, departmentID *string) (int, error) {
	var max *int
	err := scopeQuery(r.db.WithContext(ctx).Model(&model.DefaultApprovalLine{}), categoryID, teamID, departmentID).
		Select("MAX(line_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *defaultApprovalLineRepo) ReplaceScope(ctx context.Context, categoryID string, teamID, departmentID *string, lines []model.DefaultApprovalLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scopeQuery(tx, categoryID, teamID, departmentID).
			Delete(&model.DefaultApprovalLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *defaultApprovalLineRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("line_id = ?", id).
		Delete(&model.DefaultApprovalLine{}).Error
}

// scopeQuery 카테고리+팀+부서 범위 조건을 구성. nil 은 IS NULL 매칭.
func scopeQuery(q *gorm.DB, categoryID string, teamID, departmentID *string) *gorm.DB {
	q = q.Where("category_id = ?", categoryID)
	if teamID != nil {
		q = q.Where("team_id = ?", *teamID)
	} else {
		q = q.Where("team_id IS NULL")
	}
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	} else {
		q = q.Where("department_id IS NULL")
	}
	return q
}
