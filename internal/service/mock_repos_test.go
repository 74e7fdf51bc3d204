package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
)

// ── 内存数据集 ──
// 各 mock 仓储共享同一份数据，便于跨表查询（评价聚合、会话预加载导师）

type memStore struct {
	users    map[string]*model.User
	mentors  map[string]*model.Mentor
	sessions map[string]*model.Session
	reviews  map[string]*model.Review
	goals    map[string]*model.Goal
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.User),
		mentors:  make(map[string]*model.Mentor),
		sessions: make(map[string]*model.Session),
		reviews:  make(map[string]*model.Review),
		goals:    make(map[string]*model.Goal),
	}
}

// newMockRepository 构造未绑定数据库的 Repository，Transaction 直接执行回调
func newMockRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		User:    &mockUserRepo{s: store},
		Mentor:  &mockMentorRepo{s: store},
		Session: &mockSessionRepo{s: store},
		Review:  &mockReviewRepo{s: store},
		Goal:    &mockGoalRepo{s: store},
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	m.s.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.s.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.s.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range m.s.users {
		if id != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) StudentIDTaken(_ context.Context, studentID, excludeID string) (bool, error) {
	for id, u := range m.s.users {
		if id != excludeID && u.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock MentorRepository ──

type mockMentorRepo struct{ s *memStore }

func (m *mockMentorRepo) Create(_ context.Context, mentor *model.Mentor) error {
	if mentor.MentorID == "" {
		mentor.MentorID = uuid.NewString()
	}
	m.s.mentors[mentor.MentorID] = mentor
	return nil
}

func (m *mockMentorRepo) GetByID(_ context.Context, id string) (*model.Mentor, error) {
	if mt, ok := m.s.mentors[id]; ok {
		cp := *mt
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, mt := range m.s.mentors {
		if strings.EqualFold(mt.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMentorRepo) ranked(filter repository.MentorFilter) []model.Mentor {
	search := strings.ToLower(filter.Search)
	var result []model.Mentor
	for _, mt := range m.s.mentors {
		if search != "" &&
			!strings.Contains(strings.ToLower(mt.Name), search) &&
			!strings.Contains(strings.ToLower(mt.Expertise), search) &&
			!strings.Contains(strings.ToLower(mt.Department), search) {
			continue
		}
		if filter.Department != "" && mt.Department != filter.Department {
			continue
		}
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Rating != result[j].Rating {
			return result[i].Rating > result[j].Rating
		}
		if result[i].TotalSessions != result[j].TotalSessions {
			return result[i].TotalSessions > result[j].TotalSessions
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (m *mockMentorRepo) List(_ context.Context, filter repository.MentorFilter, offset, limit int) ([]model.Mentor, int64, error) {
	all := m.ranked(filter)
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockMentorRepo) Top(_ context.Context, limit int) ([]model.Mentor, error) {
	return page(m.ranked(repository.MentorFilter{}), 0, limit), nil
}

func (m *mockMentorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.s.mentors)), nil
}

func (m *mockMentorRepo) Departments(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, mt := range m.s.mentors {
		if !seen[mt.Department] {
			seen[mt.Department] = true
			result = append(result, mt.Department)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockMentorRepo) ListWithCompletedSessions(_ context.Context, userID string) ([]model.Mentor, error) {
	ids := make(map[string]bool)
	for _, s := range m.s.sessions {
		if s.UserID == userID && s.Status == model.SessionStatusCompleted {
			ids[s.MentorID] = true
		}
	}
	var result []model.Mentor
	for id := range ids {
		if mt, ok := m.s.mentors[id]; ok {
			result = append(result, *mt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockMentorRepo) UpdateRatingStats(_ context.Context, id string, rating float64, totalReviews int) error {
	mt, ok := m.s.mentors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mt.Rating = rating
	mt.TotalReviews = totalReviews
	return nil
}

func (m *mockMentorRepo) IncrementTotalSessions(_ context.Context, id string) error {
	mt, ok := m.s.mentors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mt.TotalSessions++
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct{ s *memStore }

// withAssociations 模拟 Preload("Mentor") / Preload("Review")
func (m *mockSessionRepo) withAssociations(s *model.Session) model.Session {
	cp := *s
	if mt, ok := m.s.mentors[s.MentorID]; ok {
		mcp := *mt
		cp.Mentor = &mcp
	}
	cp.Review = nil
	for _, r := range m.s.reviews {
		if r.SessionID != nil && *r.SessionID == s.SessionID {
			rcp := *r
			cp.Review = &rcp
			break
		}
	}
	return cp
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	cp := *session
	m.s.sessions[session.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.s.sessions[id]; ok {
		cp := m.withAssociations(s)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	s, ok := m.s.sessions[session.SessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Topic = session.Topic
	s.Description = session.Description
	s.SessionDate = session.SessionDate
	s.SessionTime = session.SessionTime
	s.Duration = session.Duration
	s.Type = session.Type
	return nil
}

func (m *mockSessionRepo) UpdateStatus(_ context.Context, id, status, notes string) error {
	s, ok := m.s.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	if status == model.SessionStatusCompleted {
		s.Notes = notes
	}
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.sessions, id)
	// 与外键 ON DELETE CASCADE 一致
	for rid, r := range m.s.reviews {
		if r.SessionID != nil && *r.SessionID == id {
			delete(m.s.reviews, rid)
		}
	}
	return nil
}

func (m *mockSessionRepo) sortedByUser(userID string) []model.Session {
	var result []model.Session
	for _, s := range m.s.sessions {
		if s.UserID == userID {
			result = append(result, m.withAssociations(s))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti := result[i].StartsAt(jakarta)
		tj := result[j].StartsAt(jakarta)
		return ti.After(tj)
	})
	return result
}

func (m *mockSessionRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Session, int64, error) {
	all := m.sortedByUser(userID)
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockSessionRepo) ListAllByUser(_ context.Context, userID string) ([]model.Session, error) {
	return m.sortedByUser(userID), nil
}

func (m *mockSessionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.s.sessions)), nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct{ s *memStore }

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	if review.ReviewID == "" {
		review.ReviewID = uuid.NewString()
	}
	cp := *review
	m.s.reviews[review.ReviewID] = &cp
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id string) (*model.Review, error) {
	if r, ok := m.s.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) Update(_ context.Context, review *model.Review) error {
	r, ok := m.s.reviews[review.ReviewID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Rating = review.Rating
	r.Feedback = review.Feedback
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.s.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.reviews, id)
	return nil
}

func (m *mockReviewRepo) ExistsForSession(_ context.Context, sessionID, userID string) (bool, error) {
	for _, r := range m.s.reviews {
		if r.SessionID != nil && *r.SessionID == sessionID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepo) StatsByMentor(_ context.Context, mentorID string) (repository.RatingStats, error) {
	var sum, n int
	for _, r := range m.s.reviews {
		if r.MentorID == mentorID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return repository.RatingStats{}, nil
	}
	return repository.RatingStats{Average: float64(sum) / float64(n), Count: int64(n)}, nil
}

func (m *mockReviewRepo) ListByMentor(_ context.Context, mentorID string, limit int) ([]model.Review, error) {
	var result []model.Review
	for _, r := range m.s.reviews {
		if r.MentorID == mentorID {
			cp := *r
			if u, ok := m.s.users[r.UserID]; ok {
				ucp := *u
				cp.User = &ucp
			}
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return page(result, 0, limit), nil
}

func (m *mockReviewRepo) AverageByUser(_ context.Context, userID string) (float64, error) {
	var sum, n int
	for _, r := range m.s.reviews {
		if r.UserID == userID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// ── Mock GoalRepository ──

type mockGoalRepo struct{ s *memStore }

func (m *mockGoalRepo) Create(_ context.Context, goal *model.Goal) error {
	if goal.GoalID == "" {
		goal.GoalID = uuid.NewString()
	}
	cp := *goal
	m.s.goals[goal.GoalID] = &cp
	return nil
}

func (m *mockGoalRepo) ListByUser(_ context.Context, userID string) ([]model.Goal, error) {
	var result []model.Goal
	for _, g := range m.s.goals {
		if g.UserID == userID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

// uuidFor 由任意字符串派生确定性的 UUID
func uuidFor(s string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(s)).String()
}
