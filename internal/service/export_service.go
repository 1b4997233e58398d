package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
)

// ── 내보내기 업무 에러 ──

var (
	ErrExportNoData       = errors.New("내보낼 결재 문서가 없습니다")
	ErrExportGenerateFail = errors.New("Excel 파일 생성에 실패했습니다")
)

// exportListLimit 한 번에 내보내는 최대 건수
const exportListLimit = 1000

// ExportService 결재 목록 Excel 내보내기 인터페이스
// 결과는 bytes.Buffer 로 반환하고 Handler 가 응답 헤더를 설정해 내려보낸다.
type ExportService interface {
	ExportApprovals(ctx context.Context, req *dto.ApprovalListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService 인스턴스 생성
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportApprovals 필터 조건에 맞는 결재 목록을 xlsx 로 변환
func (s *exportService) ExportApprovals(ctx context.Context, req *dto.ApprovalListRequest) (*bytes.Buffer, string, error) {
	filter := repository.ApprovalListFilter{
		Limit:       exportListLimit,
		Tab:         req.Tab,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
		RequesterID: req.RequesterID,
		ApproverID:  req.ApproverID,
		Keyword:     req.Keyword,
	}
	if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
		end := t.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	rows, _, err := s.repo.Approval.List(ctx, filter)
	if err != nil {
		s.logger.Error("내보내기용 결재 목록 조회 실패", zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "결재목록"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"문서번호", "카테고리", "제목", "기안자", "기안팀", "상태", "현재차수", "상신일", "완료일"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for i, row := range rows {
		values := []interface{}{
			row.DocumentNumber,
			categoryName(&row),
			row.Title,
			requesterName(&row),
			requesterTeamName(&row),
			statusLabel(row.Status),
			row.CurrentLineOrder,
			formatTimePtr(row.SubmittedAt),
			formatTimePtr(row.CompletedAt),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("Excel 파일 생성 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("approvals_%s.xlsx", time.Now().Format("20060102"))
	return &buf, filename, nil
}

func categoryName(r *model.ApprovalRequest) string {
	if r.Category != nil {
		return r.Category.Name
	}
	return r.CategoryID
}

func requesterName(r *model.ApprovalRequest) string {
	if r.Requester != nil {
		return r.Requester.Name
	}
	return ""
}

func requesterTeamName(r *model.ApprovalRequest) string {
	if r.Requester != nil && r.Requester.Team != nil {
		return r.Requester.Team.Name
	}
	return ""
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// statusLabel 상태 코드의 한글 표시명
func statusLabel(status string) string {
	switch status {
	case model.RequestStatusDraft:
		return "임시저장"
	case model.RequestStatusPending:
		return "진행중"
	case model.RequestStatusApproved:
		return "승인"
	case model.RequestStatusRejected:
		return "반려"
	case model.RequestStatusWithdrawn:
		return "회수"
	default:
		return status
	}
}
