package repository

import "gorm.io/gorm"

// Repository 모든 Repository 의 집약 진입점
type Repository struct {
	User              UserRepository
	Team              TeamRepository
	Department        DepartmentRepository
	PositionHierarchy PositionHierarchyRepository
	Category          ApprovalCategoryRepository
	DefaultLine       DefaultApprovalLineRepository
	Approval          ApprovalRepository
}

// NewRepository Repository 집약 생성
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:              NewUserRepo(db),
		Team:              NewTeamRepo(db),
		Department:        NewDepartmentRepo(db),
		PositionHierarchy: NewPositionHierarchyRepo(db),
		Category:          NewApprovalCategoryRepo(db),
		DefaultLine:       NewDefaultApprovalLineRepo(db),
		Approval:          NewApprovalRepo(db),
	}
}
