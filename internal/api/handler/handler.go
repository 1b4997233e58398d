package handler

import "github.com/erurang/wooyangcrm-backend/internal/service"

// Handler 모든 Handler 의 집약 진입점
type Handler struct {
	Approval    *ApprovalHandler
	DefaultLine *DefaultLineHandler
	Org         *OrgHandler
}

// NewHandler Handler 집약 생성
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Approval:    NewApprovalHandler(svc.Resolver, svc.Approval, svc.Export),
		DefaultLine: NewDefaultLineHandler(svc.DefaultLine),
		Org:         NewOrgHandler(svc.Org),
	}
}
