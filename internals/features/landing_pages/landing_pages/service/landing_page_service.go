package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	helper "eventpages_backend/internals/helpers"
)

const (
	minTitleLen     = 3
	fallbackSlug    = "landing-page"
	copyTitleSuffix = " (Copy)"
)

type Service struct {
	Store Store
}

func New(store Store) *Service { return &Service{Store: store} }

func checkTitle(title string) error {
	if utf8.RuneCountInString(title) < minTitleLen {
		return invalid("landing_page_title", MsgTitleTooShort)
	}
	return nil
}

// uniqueSlug derives a slug from title and appends -2, -3, ... while the
// organization already uses it.
func (s *Service) uniqueSlug(ctx context.Context, orgID uuid.UUID, title string) (string, error) {
	return helper.GenerateUniqueSlug(helper.SlugOptions{
		DefaultBase: fallbackSlug,
		Taken: func(candidate string) (bool, error) {
			return s.Store.SlugExists(ctx, orgID, candidate, uuid.Nil)
		},
	}, title)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, p helper.Paging) ([]model.LandingPageModel, int64, error) {
	return s.Store.ListPages(ctx, orgID, p.Offset, p.Limit)
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*model.LandingPageModel, error) {
	return s.Store.FindPage(ctx, orgID, id)
}

// Create makes an unpublished page with empty sections and the default theme.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, title string) (*model.LandingPageModel, error) {
	title = strings.TrimSpace(title)
	if err := checkTitle(title); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, orgID, title)
	if err != nil {
		return nil, err
	}

	m := model.NewLandingPage(orgID, title, slug)
	if err := s.Store.CreatePage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update loads the page, lets apply mutate a private copy, re-checks the
// page-level rules and saves. Nothing is written when a rule fails.
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, apply func(*model.LandingPageModel)) (*model.LandingPageModel, error) {
	cur, err := s.Store.FindPage(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	m := cur.Copy()
	apply(m)

	// identity is not editable
	m.LandingPageID = cur.LandingPageID
	m.LandingPageOrganizationID = cur.LandingPageOrganizationID
	m.LandingPageCreatedAt = cur.LandingPageCreatedAt

	m.LandingPageTitle = strings.TrimSpace(m.LandingPageTitle)
	if m.LandingPageTitle != cur.LandingPageTitle {
		if err := checkTitle(m.LandingPageTitle); err != nil {
			return nil, err
		}
	}

	if !helper.IsValidSlug(m.LandingPageSlug) {
		return nil, invalid("landing_page_slug", MsgInvalidSlug)
	}
	if m.LandingPageSlug != cur.LandingPageSlug {
		taken, err := s.Store.SlugExists(ctx, orgID, m.LandingPageSlug, m.LandingPageID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ValidationError{Field: "landing_page_slug", Message: MsgSlugTaken, Err: ErrSlugTaken}
		}
	}

	fields, err := formfields.NewFields(m.Fields())
	if err != nil {
		return nil, &ValidationError{Field: "landing_page_form_fields", Message: err.Error(), Err: err}
	}
	m.LandingPageFormFields = datatypes.NewJSONType(fields)
	m.LandingPageTheme = datatypes.NewJSONType(m.LandingPageTheme.Data().WithDefaults())
	if m.SocialLinks() == nil {
		m.LandingPageSocialMedia = datatypes.NewJSONType([]model.SocialLink{})
	}

	if err := s.Store.SavePage(ctx, m); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, &ValidationError{Field: "landing_page_slug", Message: MsgSlugTaken, Err: ErrSlugTaken}
		}
		return nil, err
	}
	return m, nil
}

// Duplicate copies everything but identity and timestamps into a new,
// unpublished page whose slug comes from newTitle.
func (s *Service) Duplicate(ctx context.Context, orgID, id uuid.UUID, newTitle string) (*model.LandingPageModel, error) {
	src, err := s.Store.FindPage(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(newTitle)
	if title == "" {
		title = src.LandingPageTitle + copyTitleSuffix
	}
	slug, err := s.uniqueSlug(ctx, orgID, title)
	if err != nil {
		return nil, err
	}

	m := src.Copy()
	m.LandingPageID = uuid.Nil
	m.LandingPageCreatedAt = time.Time{}
	m.LandingPageUpdatedAt = time.Time{}
	m.LandingPageTitle = title
	m.LandingPageSlug = slug
	m.LandingPagePublished = false

	if err := s.Store.CreatePage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.Store.DeletePage(ctx, orgID, id)
}

// GetPublished is the public read path; unpublished pages look missing.
func (s *Service) GetPublished(ctx context.Context, slug string) (*model.LandingPageModel, error) {
	slug = strings.TrimSpace(slug)
	if !helper.IsValidSlug(slug) {
		return nil, ErrLandingPageNotFound
	}
	return s.Store.FindPublishedBySlug(ctx, slug)
}
