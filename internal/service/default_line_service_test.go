package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/erurang/wooyangcrm-backend/internal/dto"
	"github.com/erurang/wooyangcrm-backend/internal/model"
)

func setupTestDefaultLineService() (DefaultLineService, *mockDefaultLineRepo, *mockCategoryRepo) {
	repo, _, lineRepo, _, _ := newMockRepository()
	catRepo := repo.Category.(*mockCategoryRepo)
	catRepo.categories["expense"] = &model.ApprovalCategory{CategoryID: "expense", Name: "지출품의서"}
	svc := NewDefaultLineService(repo, zap.NewNop())
	return svc, lineRepo, catRepo
}

// ── Create ──

func TestDefaultLineService_Create_Success(t *testing.T) {
	svc, lineRepo, _ := setupTestDefaultLineService()

	result, err := svc.Create(context.Background(), &dto.CreateDefaultLineRequest{
		CategoryID:    "expense",
		ApproverType:  model.ApproverTypePosition,
		ApproverValue: "팀장",
		LineOrder:     1,
	})
	if err != nil {
		t.Fatalf("Create 실패: %v", err)
	}
	if result.LineID == "" {
		t.Error("생성된 설정에 ID가 있어야 함")
	}
	if result.LineType != model.LineTypeApproval {
		t.Errorf("line_type 미지정 시 approval 기본값: %s", result.LineType)
	}
	if !result.IsRequired {
		t.Error("is_required 기본값은 true")
	}
	if len(lineRepo.lines) != 1 {
		t.Errorf("저장 건수 1 기대, 실제 %d", len(lineRepo.lines))
	}
}

func TestDefaultLineService_Create_AutoLineOrder(t *testing.T) {
	svc, _, _ := setupTestDefaultLineService()

	req := &dto.CreateDefaultLineRequest{
		CategoryID:    "expense",
		ApproverType:  model.ApproverTypePosition,
		ApproverValue: "팀장",
	}
	first, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("1건 생성 실패: %v", err)
	}
	req.ApproverValue = "부장"
	second, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("2건 생성 실패: %v", err)
	}
	if first.LineOrder != 1 || second.LineOrder != 2 {
		t.Errorf("순번 자동 부여 실패: %d, %d", first.LineOrder, second.LineOrder)
	}

	// 다른 범위(팀 지정)는 순번이 독립적으로 시작된다
	teamReq := &dto.CreateDefaultLineRequest{
		CategoryID:    "expense",
		TeamID:        strPtr("team-s1"),
		ApproverType:  model.ApproverTypePosition,
		ApproverValue: "팀장",
	}
	scoped, err := svc.Create(context.Background(), teamReq)
	if err != nil {
		t.Fatalf("팀 범위 생성 실패: %v", err)
	}
	if scoped.LineOrder != 1 {
		t.Errorf("범위별 순번 독립 기대, 실제 %d", scoped.LineOrder)
	}
}

func TestDefaultLineService_Create_InvalidApproverType(t *testing.T) {
	svc, _, _ := setupTestDefaultLineService()

	_, err := svc.Create(context.Background(), &dto.CreateDefaultLineRequest{
		CategoryID:    "expense",
		ApproverType:  "group",
		ApproverValue: "영업부",
	})
	if !errors.Is(err, ErrInvalidApproverType) {
		t.Errorf("ErrInvalidApproverType 기대, 실제: %v", err)
	}
}

func TestDefaultLineService_Create_InvalidLineType(t *testing.T) {
	svc, _, _ := setupTestDefaultLineService()

	_, err := svc.Create(context.Background(), &dto.CreateDefaultLineRequest{
		CategoryID:    "expense",
		ApproverType:  model.ApproverTypePosition,
		ApproverValue: "팀장",
		LineType:      "final",
	})
	if !errors.Is(err, ErrInvalidLineType) {
		t.Errorf("ErrInvalidLineType 기대, 실제: %v", err)
	}
}

func TestDefaultLineService_Create_CategoryNotFound(t *testing.T) {
	svc, _, _ := setupTestDefaultLineService()

	_, err := svc.Create(context.Background(), &dto.CreateDefaultLineRequest{
		CategoryID:    "no-such",
		ApproverType:  model.ApproverTypePosition,
		ApproverValue: "팀장",
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("ErrCategoryNotFound 기대, 실제: %v", err)
	}
}

// ── List ──

func TestDefaultLineService_List_GroupedByCategory(t *testing.T) {
	svc, lineRepo, catRepo := setupTestDefaultLineService()
	catVacation := &model.ApprovalCategory{CategoryID: "vacation", Name: "휴가신청서"}
	catRepo.categories["vacation"] = catVacation
	catExpense := catRepo.categories["expense"]

	l1 := positionLine("expense", "팀장", 1)
	l1.Category = catExpense
	lineRepo.add(l1)
	l2 := positionLine("expense", "부장", 2)
	l2.Category = catExpense
	lineRepo.add(l2)
	l3 := positionLine("vacation", "팀장", 1)
	l3.Category = catVacation
	lineRepo.add(l3)

	result, err := svc.List(context.Background(), &dto.DefaultLineListRequest{})
	if err != nil {
		t.Fatalf("List 실패: %v", err)
	}
	if len(result.Data) != 3 {
		t.Errorf("전체 3건 기대, 실제 %d", len(result.Data))
	}
	if len(result.Grouped) != 2 {
		t.Fatalf("카테고리 그룹 2개 기대, 실제 %d", len(result.Grouped))
	}
	for _, g := range result.Grouped {
		if g.Category == nil {
			t.Fatal("그룹에 카테고리 정보가 있어야 함")
		}
		if g.Category.CategoryID == "expense" && len(g.Lines) != 2 {
			t.Errorf("expense 그룹 2건 기대, 실제 %d", len(g.Lines))
		}
	}
}

// ── BulkUpdate ──

func TestDefaultLineService_BulkUpdate_ReplacesScope(t *testing.T) {
	svc, lineRepo, _ := setupTestDefaultLineService()
	lineRepo.add(positionLine("expense", "과장", 1))
	lineRepo.add(positionLine("expense", "부장", 2))
	// 다른 범위는 교체 대상이 아님
	other := positionLine("expense", "차장", 1)
	other.TeamID = strPtr("team-s1")
	lineRepo.add(other)

	err := svc.BulkUpdate(context.Background(), &dto.BulkUpdateDefaultLinesRequest{
		CategoryID: "expense",
		Lines: []dto.BulkUpdateDefaultLine{
			{ApproverType: model.ApproverTypePosition, ApproverValue: "부장", LineOrder: 1},
			{ApproverType: model.ApproverTypeRole, ApproverValue: "경영지원책임자", LineOrder: 2},
			{ApproverType: model.ApproverTypePosition, ApproverValue: "대표", LineOrder: 3},
		},
	})
	if err != nil {
		t.Fatalf("BulkUpdate 실패: %v", err)
	}

	all, _ := lineRepo.List(context.Background(), "expense", "")
	if len(all) != 4 {
		t.Fatalf("교체 3건 + 타 범위 1건 = 4건 기대, 실제 %d", len(all))
	}
	var globalCount int
	for _, l := range all {
		if l.TeamID == nil && l.DepartmentID == nil {
			globalCount++
		}
	}
	if globalCount != 3 {
		t.Errorf("전사 범위는 3건으로 교체되어야 함, 실제 %d", globalCount)
	}
}

func TestDefaultLineService_BulkUpdate_ValidatesTypes(t *testing.T) {
	svc, _, _ := setupTestDefaultLineService()

	err := svc.BulkUpdate(context.Background(), &dto.BulkUpdateDefaultLinesRequest{
		CategoryID: "expense",
		Lines: []dto.BulkUpdateDefaultLine{
			{ApproverType: "committee", ApproverValue: "인사위원회", LineOrder: 1},
		},
	})
	if !errors.Is(err, ErrInvalidApproverType) {
		t.Errorf("ErrInvalidApproverType 기대, 실제: %v", err)
	}
}

// ── Delete ──

func TestDefaultLineService_Delete(t *testing.T) {
	svc, lineRepo, _ := setupTestDefaultLineService()
	lineRepo.add(positionLine("expense", "팀장", 1))
	id := lineRepo.lines[0].LineID

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete 실패: %v", err)
	}
	if len(lineRepo.lines) != 0 {
		t.Errorf("삭제 후 0건 기대, 실제 %d", len(lineRepo.lines))
	}

	if err := svc.Delete(context.Background(), "dl-ghost"); !errors.Is(err, ErrDefaultLineNotFound) {
		t.Errorf("ErrDefaultLineNotFound 기대, 실제: %v", err)
	}
}
