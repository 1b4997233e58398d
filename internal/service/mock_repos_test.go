package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/erurang/wooyangcrm-backend/internal/model"
	"github.com/erurang/wooyangcrm-backend/internal/repository"
)

// ── Mock UserRepository ──

// 탐색 결과 순서가 결정적이도록 슬라이스로 보관한다.
type mockUserRepo struct {
	users []*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{}
}

func (m *mockUserRepo) add(u *model.User) {
	m.users = append(m.users, u)
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDWithOrg(ctx context.Context, id string) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) List(_ context.Context, teamID, position string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if teamID != "" && (u.TeamID == nil || *u.TeamID != teamID) {
			continue
		}
		if position != "" && u.Position != position {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) FindByPositionInTeam(_ context.Context, position, teamID string) (*model.User, error) {
	for _, u := range m.users {
		if u.Position == position && u.TeamID != nil && *u.TeamID == teamID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByPositionInDepartment(_ context.Context, position, departmentID string) (*model.User, error) {
	for _, u := range m.users {
		if u.Position == position && u.Team != nil && u.Team.DepartmentID == departmentID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByPosition(_ context.Context, position string) (*model.User, error) {
	for _, u := range m.users {
		if u.Position == position {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByRole(_ context.Context, role string) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByTeamWithPositions(_ context.Context, teamID string, positions []string) ([]model.User, error) {
	posSet := make(map[string]bool, len(positions))
	for _, p := range positions {
		posSet[p] = true
	}
	var result []model.User
	for _, u := range m.users {
		if u.TeamID != nil && *u.TeamID == teamID && posSet[u.Position] {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context, departmentID string) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		if departmentID != "" && t.DepartmentID != departmentID {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts map[string]*model.Department
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock PositionHierarchyRepository ──

type mockPositionRepo struct {
	levels  map[string]int
	loadErr error // LevelMap 강제 실패용
}

func newMockPositionRepo() *mockPositionRepo {
	return &mockPositionRepo{levels: make(map[string]int)}
}

func (m *mockPositionRepo) LevelMap(_ context.Context) (map[string]int, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]int, len(m.levels))
	for k, v := range m.levels {
		out[k] = v
	}
	return out, nil
}

func (m *mockPositionRepo) List(_ context.Context) ([]model.PositionHierarchy, error) {
	var result []model.PositionHierarchy
	for name, level := range m.levels {
		result = append(result, model.PositionHierarchy{PositionName: name, HierarchyLevel: level})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].HierarchyLevel < result[j].HierarchyLevel })
	return result, nil
}

func (m *mockPositionRepo) BulkUpsert(_ context.Context, entries []model.PositionHierarchy) error {
	for _, e := range entries {
		m.levels[e.PositionName] = e.HierarchyLevel
	}
	return nil
}

// ── Mock ApprovalCategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.ApprovalCategory
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.ApprovalCategory)}
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.ApprovalCategory, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.ApprovalCategory, error) {
	var result []model.ApprovalCategory
	for _, c := range m.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

// ── Mock DefaultApprovalLineRepository ──

type mockDefaultLineRepo struct {
	lines   []*model.DefaultApprovalLine
	nextID  int
	listErr error // ListByCategory 강제 실패용
}

func newMockDefaultLineRepo() *mockDefaultLineRepo {
	return &mockDefaultLineRepo{}
}

func (m *mockDefaultLineRepo) add(line model.DefaultApprovalLine) {
	l := line
	if l.LineID == "" {
		m.nextID++
		l.LineID = fmt.Sprintf("dl-%03d", m.nextID)
	}
	m.lines = append(m.lines, &l)
}

func sameScope(line *model.DefaultApprovalLine, teamID, departmentID *string) bool {
	eq := func(a, b *string) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return *a == *b
	}
	return eq(line.TeamID, teamID) && eq(line.DepartmentID, departmentID)
}

func (m *mockDefaultLineRepo) ListByCategory(_ context.Context, categoryID string) ([]model.DefaultApprovalLine, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.DefaultApprovalLine
	for _, l := range m.lines {
		if l.CategoryID == categoryID {
			result = append(result, *l)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].LineOrder < result[j].LineOrder })
	return result, nil
}

func (m *mockDefaultLineRepo) List(_ context.Context, categoryID, teamID string) ([]model.DefaultApprovalLine, error) {
	var result []model.DefaultApprovalLine
	for _, l := range m.lines {
		if categoryID != "" && l.CategoryID != categoryID {
			continue
		}
		if teamID != "" && (l.TeamID == nil || *l.TeamID != teamID) {
			continue
		}
		result = append(result, *l)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].LineOrder < result[j].LineOrder })
	return result, nil
}

func (m *mockDefaultLineRepo) GetByID(_ context.Context, id string) (*model.DefaultApprovalLine, error) {
	for _, l := range m.lines {
		if l.LineID == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDefaultLineRepo) Create(_ context.Context, line *model.DefaultApprovalLine) error {
	m.nextID++
	line.LineID = fmt.Sprintf("dl-%03d", m.nextID)
	clone := *line
	m.lines = append(m.lines, &clone)
	return nil
}

func (m *mockDefaultLineRepo) MaxLineOrder(_ context.Context, categoryID string, teamID, departmentID *string) (int, error) {
	max := 0
	for _, l := range m.lines {
		if l.CategoryID == categoryID && sameScope(l, teamID, departmentID) && l.LineOrder > max {
			max = l.LineOrder
		}
	}
	return max, nil
}

func (m *mockDefaultLineRepo) ReplaceScope(ctx context.Context, categoryID string, teamID, departmentID *string, lines []model.DefaultApprovalLine) error {
	kept := m.lines[:0]
	for _, l := range m.lines {
		if !(l.CategoryID == categoryID && sameScope(l, teamID, departmentID)) {
			kept = append(kept, l)
		}
	}
	m.lines = kept
	for _, l := range lines {
		m.add(l)
	}
	return nil
}

func (m *mockDefaultLineRepo) Delete(_ context.Context, id string) error {
	for i, l := range m.lines {
		if l.LineID == id {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ApprovalRepository ──

type mockApprovalRepo struct {
	requests  map[string]*model.ApprovalRequest
	histories []model.ApprovalHistory
	nextID    int
}

func newMockApprovalRepo() *mockApprovalRepo {
	return &mockApprovalRepo{requests: make(map[string]*model.ApprovalRequest)}
}

func (m *mockApprovalRepo) CreateWithLines(_ context.Context, req *model.ApprovalRequest, lines []model.ApprovalLine, history *model.ApprovalHistory) error {
	m.nextID++
	req.RequestID = fmt.Sprintf("req-%03d", m.nextID)
	for i := range lines {
		lines[i].LineID = fmt.Sprintf("%s-line-%d", req.RequestID, i+1)
		lines[i].RequestID = req.RequestID
	}
	req.Lines = lines
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	m.requests[req.RequestID] = req
	if history != nil {
		history.RequestID = req.RequestID
		m.histories = append(m.histories, *history)
	}
	return nil
}

func (m *mockApprovalRepo) GetByID(_ context.Context, id string) (*model.ApprovalRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApprovalRepo) List(_ context.Context, f repository.ApprovalListFilter) ([]model.ApprovalRequest, int64, error) {
	var matched []model.ApprovalRequest
	for _, r := range m.requests {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.CategoryID != "" && r.CategoryID != f.CategoryID {
			continue
		}
		if f.RequesterID != "" && r.RequesterID != f.RequesterID {
			continue
		}
		if f.Keyword != "" && !strings.Contains(r.Title, f.Keyword) {
			continue
		}
		matched = append(matched, *r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DocumentNumber > matched[j].DocumentNumber })

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []model.ApprovalRequest{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], total, nil
}

func (m *mockApprovalRepo) CountByYear(_ context.Context, year int) (int64, error) {
	prefix := fmt.Sprintf("%dAPR", year)
	var count int64
	for _, r := range m.requests {
		if strings.HasPrefix(r.DocumentNumber, prefix) {
			count++
		}
	}
	return count, nil
}

func (m *mockApprovalRepo) UpdateLine(_ context.Context, lineID string, fields map[string]interface{}) error {
	for _, r := range m.requests {
		for i := range r.Lines {
			if r.Lines[i].LineID != lineID {
				continue
			}
			line := &r.Lines[i]
			if v, ok := fields["status"].(string); ok {
				line.Status = v
			}
			if v, ok := fields["comment"].(string); ok {
				line.Comment = &v
			}
			if v, ok := fields["acted_at"].(time.Time); ok {
				line.ActedAt = &v
			}
			if v, ok := fields["delegated_to"].(string); ok {
				line.DelegatedTo = &v
			}
			if v, ok := fields["delegated_reason"].(string); ok {
				line.DelegatedReason = &v
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockApprovalRepo) UpdateRequest(_ context.Context, requestID string, fields map[string]interface{}) error {
	r, ok := m.requests[requestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"].(string); ok {
		r.Status = v
	}
	if v, ok := fields["current_line_order"].(int); ok {
		r.CurrentLineOrder = v
	}
	if v, ok := fields["completed_at"].(time.Time); ok {
		r.CompletedAt = &v
	}
	return nil
}

func (m *mockApprovalRepo) AddHistory(_ context.Context, h *model.ApprovalHistory) error {
	m.histories = append(m.histories, *h)
	return nil
}

func (m *mockApprovalRepo) ListCreatedSince(_ context.Context, since time.Time, requesterID string) ([]model.ApprovalRequest, error) {
	var result []model.ApprovalRequest
	for _, r := range m.requests {
		if r.CreatedAt.Before(since) {
			continue
		}
		if requesterID != "" && r.RequesterID != requesterID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// ── 공통 구성 ──

// newMockRepository 모든 mock 을 조립한 Repository 를 만든다.
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockDefaultLineRepo, *mockPositionRepo, *mockApprovalRepo) {
	userRepo := newMockUserRepo()
	lineRepo := newMockDefaultLineRepo()
	posRepo := newMockPositionRepo()
	approvalRepo := newMockApprovalRepo()
	repo := &repository.Repository{
		User:              userRepo,
		Team:              newMockTeamRepo(),
		Department:        newMockDeptRepo(),
		PositionHierarchy: posRepo,
		Category:          newMockCategoryRepo(),
		DefaultLine:       lineRepo,
		Approval:          approvalRepo,
	}
	return repo, userRepo, lineRepo, posRepo, approvalRepo
}
