package landingpages

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	helper "eventpages_backend/internals/helpers"
)

const DefaultFile = "internals/seeds/landing_pages/data_landing_pages.yaml"

type LandingPageSeed struct {
	Title               string             `yaml:"title"`
	Subtitle            string             `yaml:"subtitle"`
	Slug                string             `yaml:"slug"`
	EventInfo           model.EventInfo    `yaml:"event_info"`
	FormFields          []formfields.Field `yaml:"form_fields"`
	SocialMedia         []model.SocialLink `yaml:"social_media"`
	Theme               model.Theme        `yaml:"theme"`
	LogoURL             string             `yaml:"logo_url"`
	BackgroundImageURL  string             `yaml:"background_image_url"`
	PrimaryButtonText   string             `yaml:"primary_button_text"`
	PrimaryButtonLink   string             `yaml:"primary_button_link"`
	SecondaryButtonText string             `yaml:"secondary_button_text"`
	SecondaryButtonLink string             `yaml:"secondary_button_link"`
	Published           bool               `yaml:"published"`
}

// Parse reads a YAML list of pages. Unknown keys are an error so typos in
// seed files do not pass silently.
func Parse(r io.Reader) ([]LandingPageSeed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seeds []LandingPageSeed
	if err := dec.Decode(&seeds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	return seeds, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ToModel builds the page for orgID. The slug defaults to one derived from
// the title; the field list goes through the same checks as an update.
func (s LandingPageSeed) ToModel(orgID uuid.UUID) (*model.LandingPageModel, error) {
	title := strings.TrimSpace(s.Title)
	if len([]rune(title)) < 3 {
		return nil, fmt.Errorf("seed %q: %s", s.Title, service.MsgTitleTooShort)
	}
	slug := strings.TrimSpace(s.Slug)
	if slug == "" {
		slug = helper.Slugify(title)
	}
	if !helper.IsValidSlug(slug) {
		return nil, fmt.Errorf("seed %q: %s", s.Title, service.MsgInvalidSlug)
	}
	fields, err := formfields.NewFields(s.FormFields)
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s.Title, err)
	}
	links := s.SocialMedia
	if links == nil {
		links = []model.SocialLink{}
	}

	m := model.NewLandingPage(orgID, title, slug)
	m.LandingPageSubtitle = optional(s.Subtitle)
	m.LandingPageEventInfo = datatypes.NewJSONType(s.EventInfo)
	m.LandingPageFormFields = datatypes.NewJSONType(fields)
	m.LandingPageSocialMedia = datatypes.NewJSONType(links)
	m.LandingPageTheme = datatypes.NewJSONType(s.Theme.WithDefaults())
	m.LandingPageLogoURL = optional(s.LogoURL)
	m.LandingPageBackgroundImageURL = optional(s.BackgroundImageURL)
	m.LandingPagePrimaryButtonText = optional(s.PrimaryButtonText)
	m.LandingPagePrimaryButtonLink = optional(s.PrimaryButtonLink)
	m.LandingPageSecondaryButtonText = optional(s.SecondaryButtonText)
	m.LandingPageSecondaryButtonLink = optional(s.SecondaryButtonLink)
	m.LandingPagePublished = s.Published
	return m, nil
}

// Seed inserts the pages whose slug the organization does not use yet and
// returns how many were created.
func Seed(ctx context.Context, store service.Store, orgID uuid.UUID, seeds []LandingPageSeed) (int, error) {
	created := 0
	for _, s := range seeds {
		m, err := s.ToModel(orgID)
		if err != nil {
			return created, err
		}
		exists, err := store.SlugExists(ctx, orgID, m.LandingPageSlug, uuid.Nil)
		if err != nil {
			return created, err
		}
		if exists {
			log.Printf("[INFO] landing page %q already exists, skipped", m.LandingPageSlug)
			continue
		}
		if err := store.CreatePage(ctx, m); err != nil {
			return created, fmt.Errorf("create %q: %w", m.LandingPageSlug, err)
		}
		created++
	}
	return created, nil
}

func SeedLandingPagesFromYAML(db *gorm.DB, orgID uuid.UUID, filePath string) {
	log.Println("[INFO] Reading seed file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("[ERROR] read seed file: %v", err)
	}
	seeds, err := Parse(bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	n, err := Seed(context.Background(), service.NewGormStore(db), orgID, seeds)
	if err != nil {
		log.Fatalf("[ERROR] seed landing pages: %v", err)
	}
	log.Printf("[INFO] Seeded %d of %d landing pages for organization %s", n, len(seeds), orgID)
}
