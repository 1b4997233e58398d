package service

import (
	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/internal/repository"
	"github.com/erurang/wooyangcrm-backend/pkg/redis"
)

// Service 모든 Service 의 집약 진입점
type Service struct {
	Resolver    ResolverService
	Approval    ApprovalService
	DefaultLine DefaultLineService
	Org         OrgService
	Export      ExportService
}

// NewService Service 집약 생성
func NewService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Resolver:    NewResolverService(repo, rdb, logger),
		Approval:    NewApprovalService(repo, logger),
		DefaultLine: NewDefaultLineService(repo, logger),
		Org:         NewOrgService(repo, rdb, logger),
		Export:      NewExportService(repo, logger),
	}
}
