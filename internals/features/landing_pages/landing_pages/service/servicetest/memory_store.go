// Package servicetest provides an in-memory service.Store for tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
)

// MemoryStore keeps pages and submissions in maps and enforces the same
// (organization, slug) uniqueness as the database. Everything handed in or
// out is a copy.
type MemoryStore struct {
	mu          sync.Mutex
	pages       map[uuid.UUID]*model.LandingPageModel
	submissions []model.FormSubmissionModel
	now         time.Time

	// Writes counts successful and failed write attempts.
	Writes int
	// Err, when set, is returned by every call.
	Err error
}

var _ service.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[uuid.UUID]*model.LandingPageModel),
		now:   time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

// tick makes timestamps strictly increasing so ordering is deterministic.
func (s *MemoryStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *MemoryStore) Page(id uuid.UUID) *model.LandingPageModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[id]; ok {
		return p.Copy()
	}
	return nil
}

func (s *MemoryStore) Submissions() []model.FormSubmissionModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FormSubmissionModel(nil), s.submissions...)
}

func (s *MemoryStore) ListPages(_ context.Context, orgID uuid.UUID, offset, limit int) ([]model.LandingPageModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := make([]model.LandingPageModel, 0)
	for _, p := range s.pages {
		if p.LandingPageOrganizationID == orgID {
			all = append(all, *p.Copy())
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].LandingPageUpdatedAt.After(all[j].LandingPageUpdatedAt)
	})
	return window(all, offset, limit), int64(len(all)), nil
}

func (s *MemoryStore) FindPage(_ context.Context, orgID, id uuid.UUID) (*model.LandingPageModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.pages[id]
	if !ok || p.LandingPageOrganizationID != orgID {
		return nil, service.ErrLandingPageNotFound
	}
	return p.Copy(), nil
}

func (s *MemoryStore) FindPublishedBySlug(_ context.Context, slug string) (*model.LandingPageModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var found *model.LandingPageModel
	for _, p := range s.pages {
		if p.LandingPageSlug != slug || !p.LandingPagePublished {
			continue
		}
		if found == nil || p.LandingPageCreatedAt.Before(found.LandingPageCreatedAt) {
			found = p
		}
	}
	if found == nil {
		return nil, service.ErrLandingPageNotFound
	}
	return found.Copy(), nil
}

func (s *MemoryStore) SlugExists(_ context.Context, orgID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.slugUsed(orgID, slug, excludeID), nil
}

func (s *MemoryStore) slugUsed(orgID uuid.UUID, slug string, excludeID uuid.UUID) bool {
	for id, p := range s.pages {
		if id != excludeID && p.LandingPageOrganizationID == orgID && p.LandingPageSlug == slug {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreatePage(_ context.Context, m *model.LandingPageModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.Err != nil {
		return s.Err
	}
	if s.slugUsed(m.LandingPageOrganizationID, m.LandingPageSlug, uuid.Nil) {
		return service.ErrSlugTaken
	}
	if m.LandingPageID == uuid.Nil {
		m.LandingPageID = uuid.New()
	}
	ts := s.tick()
	m.LandingPageCreatedAt = ts
	m.LandingPageUpdatedAt = ts
	s.pages[m.LandingPageID] = m.Copy()
	return nil
}

func (s *MemoryStore) SavePage(_ context.Context, m *model.LandingPageModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.Err != nil {
		return s.Err
	}
	cur, ok := s.pages[m.LandingPageID]
	if !ok || cur.LandingPageOrganizationID != m.LandingPageOrganizationID {
		return service.ErrLandingPageNotFound
	}
	if s.slugUsed(m.LandingPageOrganizationID, m.LandingPageSlug, m.LandingPageID) {
		return service.ErrSlugTaken
	}
	m.LandingPageCreatedAt = cur.LandingPageCreatedAt
	m.LandingPageUpdatedAt = s.tick()
	s.pages[m.LandingPageID] = m.Copy()
	return nil
}

func (s *MemoryStore) DeletePage(_ context.Context, orgID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.pages[id]
	if !ok || p.LandingPageOrganizationID != orgID {
		return service.ErrLandingPageNotFound
	}
	delete(s.pages, id)
	kept := s.submissions[:0]
	for _, sub := range s.submissions {
		if sub.FormSubmissionLandingPageID != id {
			kept = append(kept, sub)
		}
	}
	s.submissions = kept
	return nil
}

func (s *MemoryStore) CreateSubmission(_ context.Context, sub *model.FormSubmissionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.pages[sub.FormSubmissionLandingPageID]; !ok {
		return service.ErrLandingPageNotFound
	}
	sub.FormSubmissionID = uuid.New()
	sub.FormSubmissionCreatedAt = s.tick()
	s.submissions = append(s.submissions, *sub)
	return nil
}

func (s *MemoryStore) ListSubmissions(_ context.Context, pageID uuid.UUID, offset, limit int) ([]model.FormSubmissionModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := make([]model.FormSubmissionModel, 0)
	for _, sub := range s.submissions {
		if sub.FormSubmissionLandingPageID == pageID {
			all = append(all, sub)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].FormSubmissionCreatedAt.After(all[j].FormSubmissionCreatedAt)
	})
	return window(all, offset, limit), int64(len(all)), nil
}

func (s *MemoryStore) CountAnswers(_ context.Context, pageID uuid.UUID) (map[string]int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	counts := make(map[string]int64)
	var total int64
	for _, sub := range s.submissions {
		if sub.FormSubmissionLandingPageID != pageID {
			continue
		}
		total++
		for _, id := range sub.FormSubmissionFieldIDs {
			counts[id]++
		}
	}
	return counts, total, nil
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
