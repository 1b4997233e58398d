package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/config"
	"github.com/erurang/wooyangcrm-backend/internal/api/handler"
	"github.com/erurang/wooyangcrm-backend/internal/api/middleware"
	"github.com/erurang/wooyangcrm-backend/pkg/jwt"
	"github.com/erurang/wooyangcrm-backend/pkg/redis"
)

// 요청 본문 최대 크기 (결재 본문 포함)
const maxBodyBytes = 1 << 20 // 1MB

// Setup Gin 라우터 엔진 초기화
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 전역 미들웨어 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 헬스체크 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 결재 모듈
		approvals := v1.Group("/approvals")
		{
			approvals.POST("/resolve-lines", middleware.RateLimit(rdb, 30, time.Minute), h.Approval.ResolveLines)
			approvals.POST("", h.Approval.CreateApproval)
			approvals.GET("", h.Approval.ListApprovals)
			approvals.GET("/statistics", h.Approval.GetStatistics)
			approvals.GET("/export", h.Approval.ExportApprovals)
			approvals.GET("/:id", h.Approval.GetApproval)
			approvals.POST("/:id/action", h.Approval.ApprovalAction)
		}

		// 기본 결재선 관리 (관리자 전용)
		defaultLines := v1.Group("/admin/approvals/default-lines")
		defaultLines.Use(middleware.RoleAuth("admin"))
		{
			defaultLines.GET("", h.DefaultLine.ListDefaultLines)
			defaultLines.POST("", h.DefaultLine.CreateDefaultLine)
			defaultLines.PUT("", h.DefaultLine.BulkUpdateDefaultLines)
			defaultLines.DELETE("/:id", h.DefaultLine.DeleteDefaultLine)
		}

		// 조직 참조 데이터
		org := v1.Group("/org")
		{
			org.GET("/departments", h.Org.ListDepartments)
			org.GET("/teams", h.Org.ListTeams)
			org.GET("/users", h.Org.ListUsers)
			org.GET("/categories", h.Org.ListCategories)
			org.GET("/position-hierarchy", h.Org.ListPositionHierarchy)
			org.PUT("/position-hierarchy", middleware.RoleAuth("admin"), h.Org.UpsertPositionHierarchy)
		}
	}

	return r
}
