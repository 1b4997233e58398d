package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/model"
)

// ApprovalListFilter 결재 목록 조회 조건
type ApprovalListFilter struct {
	Limit       int
	Offset      int
	Tab         string // all | pending | requested | approved | reference
	Status      string
	CategoryID  string
	RequesterID string
	ApproverID  string
	Keyword     string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ApprovalRepository 결재 요청 데이터 접근 인터페이스
type ApprovalRepository interface {
	// CreateWithLines 요청+결재선+이력을 한 트랜잭션으로 생성
	CreateWithLines(ctx context.Context, req *model.ApprovalRequest, lines []model.ApprovalLine, history *model.ApprovalHistory) error
	GetByID(ctx context.Context, id string) (*model.ApprovalRequest, error)
	List(ctx context.Context, f ApprovalListFilter) ([]model.ApprovalRequest, int64, error)
	// CountByYear 해당 연도 생성 건수 (문서번호 채번용)
	CountByYear(ctx context.Context, year int) (int64, error)
	UpdateLine(ctx context.Context, lineID string, fields map[string]interface{}) error
	UpdateRequest(ctx context.Context, requestID string, fields map[string]interface{}) error
	AddHistory(ctx context.Context, h *model.ApprovalHistory) error
	// ListCreatedSince 통계용 조회 (카테고리 관계 포함)
	ListCreatedSince(ctx context.Context, since time.Time, requesterID string) ([]model.ApprovalRequest, error)
}

// approvalRepo ApprovalRepository 의 GORM 구현
type approvalRepo struct {
	db *gorm.DB
}

// NewApprovalRepo ApprovalRepository 인스턴스 생성
func NewApprovalRepo(db *gorm.DB) ApprovalRepository {
	return &approvalRepo{db: db}
}

func (r *approvalRepo) CreateWithLines(ctx context.Context, req *model.ApprovalRequest, lines []model.ApprovalLine, history *model.ApprovalHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RequestID = req.RequestID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		if history != nil {
			history.RequestID = req.RequestID
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *approvalRepo) GetByID(ctx context.Context, id string) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Requester").
		Preload("Requester.Team").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_lines.line_order ASC")
		}).
		Preload("Lines.Approver").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepo) List(ctx context.Context, f ApprovalListFilter) ([]model.ApprovalRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ApprovalRequest{})

	switch f.Tab {
	case "pending":
		// 내가 결재할 차례인 문서
		sub := r.db.Model(&model.ApprovalLine{}).
			Select("request_id").
			Where("approver_id = ? AND status = ?", f.ApproverID, model.LineStatusPending)
		q = q.Where("request_id IN (?)", sub).
			Where("status = ?", model.RequestStatusPending)
	case "requested":
		q = q.Where("requester_id = ?", f.RequesterID)
	case "approved":
		q = q.Where("status IN ?", []string{model.RequestStatusApproved, model.RequestStatusRejected})
	case "reference":
		sub := r.db.Model(&model.ApprovalLine{}).
			Select("request_id").
			Where("approver_id = ? AND line_type = ?", f.ApproverID, model.LineTypeReference)
		q = q.Where("request_id IN (?)", sub)
	default:
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
	}

	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", kw, kw)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.ApprovalRequest
	err := q.
		Preload("Category").
		Preload("Requester").
		Preload("Requester.Team").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_lines.line_order ASC")
		}).
		Preload("Lines.Approver").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *approvalRepo) CountByYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ApprovalRequest{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *approvalRepo) UpdateLine(ctx context.Context, lineID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.ApprovalLine{}).
		Where("line_id = ?", lineID).
		Updates(fields).Error
}

func (r *approvalRepo) UpdateRequest(ctx context.Context, requestID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.ApprovalRequest{}).
		Where("request_id = ?", requestID).
		Updates(fields).Error
}

func (r *approvalRepo) AddHistory(ctx context.Context, h *model.ApprovalHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *approvalRepo) ListCreatedSince(ctx context.Context, since time.Time, requesterID string) ([]model.ApprovalRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("created_at >= ?", since)
	if requesterID != "" {
		q = q.Where("requester_id = ?", requesterID)
	}
	var reqs []model.ApprovalRequest
	err := q.Find(&reqs).Error
	return reqs, err
}
