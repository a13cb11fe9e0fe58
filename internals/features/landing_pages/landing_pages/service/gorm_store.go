package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	helper "eventpages_backend/internals/helpers"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ Store = (*GormStore)(nil)

func (s *GormStore) ListPages(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]model.LandingPageModel, int64, error) {
	tx := s.DB.WithContext(ctx).
		Model(&model.LandingPageModel{}).
		Where("landing_page_organization_id = ?", orgID).
		Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.LandingPageModel, 0, limit)
	if err := tx.
		Order("landing_page_updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) FindPage(ctx context.Context, orgID, id uuid.UUID) (*model.LandingPageModel, error) {
	var m model.LandingPageModel
	err := s.DB.WithContext(ctx).
		Where("landing_page_id = ? AND landing_page_organization_id = ?", id, orgID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLandingPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindPublishedBySlug(ctx context.Context, slug string) (*model.LandingPageModel, error) {
	var m model.LandingPageModel
	err := s.DB.WithContext(ctx).
		Where("landing_page_slug = ? AND landing_page_published = ?", slug, true).
		Order("landing_page_created_at ASC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLandingPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) SlugExists(ctx context.Context, orgID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.LandingPageModel{}).
		Where("landing_page_organization_id = ? AND landing_page_slug = ?", orgID, slug)
	if excludeID != uuid.Nil {
		q = q.Where("landing_page_id <> ?", excludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *GormStore) CreatePage(ctx context.Context, m *model.LandingPageModel) error {
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *GormStore) SavePage(ctx context.Context, m *model.LandingPageModel) error {
	res := s.DB.WithContext(ctx).
		Model(m).
		Where("landing_page_organization_id = ?", m.LandingPageOrganizationID).
		Select("*").
		Omit("landing_page_id", "landing_page_organization_id", "landing_page_created_at").
		Updates(m)
	if res.Error != nil {
		if helper.IsUniqueViolation(res.Error) {
			return ErrSlugTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLandingPageNotFound
	}
	return nil
}

func (s *GormStore) DeletePage(ctx context.Context, orgID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("landing_page_id = ? AND landing_page_organization_id = ?", id, orgID).
		Delete(&model.LandingPageModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLandingPageNotFound
	}
	return nil
}

func (s *GormStore) CreateSubmission(ctx context.Context, sub *model.FormSubmissionModel) error {
	if err := s.DB.WithContext(ctx).Omit("LandingPage").Create(sub).Error; err != nil {
		// page deleted between lookup and insert
		if helper.IsForeignKeyViolation(err) {
			return ErrLandingPageNotFound
		}
		return err
	}
	return nil
}

func (s *GormStore) ListSubmissions(ctx context.Context, pageID uuid.UUID, offset, limit int) ([]model.FormSubmissionModel, int64, error) {
	tx := s.DB.WithContext(ctx).
		Model(&model.FormSubmissionModel{}).
		Where("form_submission_landing_page_id = ?", pageID).
		Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.FormSubmissionModel, 0, limit)
	if err := tx.
		Order("form_submission_created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) CountAnswers(ctx context.Context, pageID uuid.UUID) (map[string]int64, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.FormSubmissionModel{}).
		Where("form_submission_landing_page_id = ?", pageID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type row struct {
		FieldID  string `gorm:"column:field_id"`
		Answered int64  `gorm:"column:answered"`
	}
	var rows []row
	if err := db.Raw(`
		SELECT f AS field_id, COUNT(*) AS answered
		FROM form_submissions, unnest(form_submission_field_ids) AS f
		WHERE form_submission_landing_page_id = ?
		GROUP BY f`, pageID).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.FieldID] = r.Answered
	}
	return out, total, nil
}
