package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erurang/wooyangcrm-backend/internal/model"
)

// TeamRepository 팀 데이터 접근 인터페이스
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context, departmentID string) ([]model.Team, error)
}

// DepartmentRepository 부서 데이터 접근 인터페이스
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
}

// PositionHierarchyRepository 직급 체계 데이터 접근 인터페이스
type PositionHierarchyRepository interface {
	// LevelMap 전체 직급 체계를 라벨→레벨 맵으로 조회
	LevelMap(ctx context.Context) (map[string]int, error)
	List(ctx context.Context) ([]model.PositionHierarchy, error)
	// BulkUpsert 직급 레벨 일괄 갱신 (position_name 기준 upsert)
	BulkUpsert(ctx context.Context, entries []model.PositionHierarchy) error
}

// ── Team ──

type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo TeamRepository 인스턴스 생성
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) List(ctx context.Context, departmentID string) ([]model.Team, error) {
	q := r.db.WithContext(ctx).Preload("Department")
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	var teams []model.Team
	err := q.Order("name ASC").Find(&teams).Error
	return teams, err
}

// ── Department ──

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo DepartmentRepository 인스턴스 생성
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

// ── PositionHierarchy ──

type positionHierarchyRepo struct {
	db *gorm.DB
}

// NewPositionHierarchyRepo PositionHierarchyRepository 인스턴스 생성
func NewPositionHierarchyRepo(db *gorm.DB) PositionHierarchyRepository {
	return &positionHierarchyRepo{db: db}
}

func (r *positionHierarchyRepo) LevelMap(ctx context.Context) (map[string]int, error) {
	var rows []model.PositionHierarchy
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]int, len(rows))
	for _, row := range rows {
		m[row.PositionName] = row.HierarchyLevel
	}
	return m, nil
}

func (r *positionHierarchyRepo) List(ctx context.Context) ([]model.PositionHierarchy, error) {
	var rows []model.PositionHierarchy
	err := r.db.WithContext(ctx).
		Order("hierarchy_level ASC").
		Find(&rows).Error
	return rows, err
}

func (r *positionHierarchyRepo) BulkUpsert(ctx context.Context, entries []model.PositionHierarchy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "position_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"hierarchy_level", "updated_at"}),
		}).
		Create(&entries).Error
}
