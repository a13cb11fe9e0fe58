// file: internals/features/landing_pages/landing_pages/dto/landing_page_dto.go
package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

/* =========================================================
   Shared helpers
   ========================================================= */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return strings.ToUpper(s)
}

/* =========================================================
   PatchField (tri-state): absent | null | value
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

/* =========================================================
   Requests: CREATE / DUPLICATE
   ========================================================= */

// Title length rules live in the service so every caller gets the same message.
type CreateLandingPageRequest struct {
	LandingPageTitle string `json:"landing_page_title" validate:"max=200"`
}

func (r *CreateLandingPageRequest) Normalize() {
	r.LandingPageTitle = strings.TrimSpace(r.LandingPageTitle)
}

func (r *CreateLandingPageRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

type DuplicateLandingPageRequest struct {
	LandingPageTitle string `json:"landing_page_title" validate:"max=200"`
}

func (r *DuplicateLandingPageRequest) Normalize() {
	r.LandingPageTitle = strings.TrimSpace(r.LandingPageTitle)
}

func (r *DuplicateLandingPageRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

/* =========================================================
   Requests: PATCH (partial)
   ========================================================= */

type PatchLandingPageRequest struct {
	LandingPageTitle               PatchField[string]             `json:"landing_page_title"`
	LandingPageSubtitle            PatchField[string]             `json:"landing_page_subtitle"`
	LandingPageSlug                PatchField[string]             `json:"landing_page_slug"`
	LandingPageEventInfo           PatchField[model.EventInfo]    `json:"landing_page_event_info"`
	LandingPageFormFields          PatchField[formfields.Fields]  `json:"landing_page_form_fields"`
	LandingPageSocialMedia         PatchField[[]model.SocialLink] `json:"landing_page_social_media"`
	LandingPageTheme               PatchField[model.Theme]        `json:"landing_page_theme"`
	LandingPageLogoURL             PatchField[string]             `json:"landing_page_logo_url"`
	LandingPageBackgroundImageURL  PatchField[string]             `json:"landing_page_background_image_url"`
	LandingPagePrimaryButtonText   PatchField[string]             `json:"landing_page_primary_button_text"`
	LandingPagePrimaryButtonLink   PatchField[string]             `json:"landing_page_primary_button_link"`
	LandingPageSecondaryButtonText PatchField[string]             `json:"landing_page_secondary_button_text"`
	LandingPageSecondaryButtonLink PatchField[string]             `json:"landing_page_secondary_button_link"`
	LandingPagePublished           PatchField[bool]               `json:"landing_page_published"`
}

func trimPatch(p *PatchField[string]) {
	if p.Present {
		p.Value = trimPtr(p.Value)
	}
}

func (p *PatchLandingPageRequest) Normalize() {
	if p.LandingPageTitle.Present && p.LandingPageTitle.Value != nil {
		v := strings.TrimSpace(*p.LandingPageTitle.Value)
		p.LandingPageTitle.Value = &v
	}
	// slug is only trimmed: a wrongly cased slug must be reported, not fixed
	if p.LandingPageSlug.Present && p.LandingPageSlug.Value != nil {
		v := strings.TrimSpace(*p.LandingPageSlug.Value)
		p.LandingPageSlug.Value = &v
	}
	for _, f := range []*PatchField[string]{
		&p.LandingPageSubtitle,
		&p.LandingPageLogoURL,
		&p.LandingPageBackgroundImageURL,
		&p.LandingPagePrimaryButtonText,
		&p.LandingPagePrimaryButtonLink,
		&p.LandingPageSecondaryButtonText,
		&p.LandingPageSecondaryButtonLink,
	} {
		trimPatch(f)
	}
	if ei := p.LandingPageEventInfo.Value; ei != nil {
		ei.Date = strings.TrimSpace(ei.Date)
		ei.Time = strings.TrimSpace(ei.Time)
		ei.Location = strings.TrimSpace(ei.Location)
		ei.Description = strings.TrimSpace(ei.Description)
	}
	if th := p.LandingPageTheme.Value; th != nil {
		th.PrimaryColor = normalizeHex(th.PrimaryColor)
		th.SecondaryColor = normalizeHex(th.SecondaryColor)
		th.AccentColor = normalizeHex(th.AccentColor)
		th.FontFamily = strings.TrimSpace(th.FontFamily)
		th.ButtonStyle = model.ButtonStyle(strings.ToLower(strings.TrimSpace(string(th.ButtonStyle))))
		*th = th.WithDefaults()
	}
	if links := p.LandingPageSocialMedia.Value; links != nil {
		for i := range *links {
			l := &(*links)[i]
			l.Platform = model.SocialPlatform(strings.ToLower(strings.TrimSpace(string(l.Platform))))
			l.URL = strings.TrimSpace(l.URL)
			l.Label = strings.TrimSpace(l.Label)
		}
	}
}

// ValidatePartial checks only what was sent. Title, slug and form-field
// rules are enforced by the service.
func (p *PatchLandingPageRequest) ValidatePartial(v *validator.Validate) error {
	if p.LandingPageTitle.Present && p.LandingPageTitle.Value == nil {
		return errors.New("landing_page_title cannot be null")
	}
	if p.LandingPageSlug.Present && p.LandingPageSlug.Value == nil {
		return errors.New("landing_page_slug cannot be null")
	}
	if val := p.LandingPageTitle.Value; val != nil && len(*val) > 200 {
		return errors.New("landing_page_title max 200 characters")
	}
	if val := p.LandingPageSubtitle.Value; val != nil && len(*val) > 300 {
		return errors.New("landing_page_subtitle max 300 characters")
	}
	if val := p.LandingPageSlug.Value; val != nil && len(*val) > 160 {
		return errors.New("landing_page_slug max 160 characters")
	}
	for name, val := range map[string]*string{
		"landing_page_primary_button_text":   p.LandingPagePrimaryButtonText.Value,
		"landing_page_secondary_button_text": p.LandingPageSecondaryButtonText.Value,
	} {
		if val != nil && len(*val) > 80 {
			return fmt.Errorf("%s max 80 characters", name)
		}
	}
	for name, val := range map[string]*string{
		"landing_page_logo_url":             p.LandingPageLogoURL.Value,
		"landing_page_background_image_url": p.LandingPageBackgroundImageURL.Value,
	} {
		if val != nil {
			if err := v.Var(*val, "url,max=2000"); err != nil {
				return fmt.Errorf("%s must be a valid URL", name)
			}
		}
	}
	for name, val := range map[string]*string{
		"landing_page_primary_button_link":   p.LandingPagePrimaryButtonLink.Value,
		"landing_page_secondary_button_link": p.LandingPageSecondaryButtonLink.Value,
	} {
		if val != nil && !IsSafeLink(*val) {
			return fmt.Errorf("%s must be an http(s), mailto or tel URL, a path, or an #anchor", name)
		}
	}

	if p.LandingPageEventInfo.Present {
		if p.LandingPageEventInfo.Value == nil {
			return errors.New("landing_page_event_info cannot be null")
		}
		if err := v.Struct(p.LandingPageEventInfo.Value); err != nil {
			return fmt.Errorf("landing_page_event_info: %w", err)
		}
	}
	if p.LandingPageTheme.Present {
		if p.LandingPageTheme.Value == nil {
			return errors.New("landing_page_theme cannot be null")
		}
		if err := v.Struct(p.LandingPageTheme.Value); err != nil {
			return fmt.Errorf("landing_page_theme: %w", err)
		}
	}
	if links := p.LandingPageSocialMedia.Value; links != nil {
		for i := range *links {
			if err := v.Struct(&(*links)[i]); err != nil {
				return fmt.Errorf("landing_page_social_media[%d]: %w", i, err)
			}
		}
	}
	if p.LandingPageFormFields.Present && p.LandingPageFormFields.Value == nil {
		return errors.New("landing_page_form_fields cannot be null")
	}
	return nil
}

// ApplyPatch writes the present members into m.
func (p *PatchLandingPageRequest) ApplyPatch(m *model.LandingPageModel) {
	if val, ok := p.LandingPageTitle.Get(); ok && val != nil {
		m.LandingPageTitle = *val
	}
	if val, ok := p.LandingPageSlug.Get(); ok && val != nil {
		m.LandingPageSlug = *val
	}
	if val, ok := p.LandingPageEventInfo.Get(); ok && val != nil {
		m.LandingPageEventInfo = datatypes.NewJSONType(*val)
	}
	if val, ok := p.LandingPageFormFields.Get(); ok && val != nil {
		m.LandingPageFormFields = datatypes.NewJSONType(*val)
	}
	if val, ok := p.LandingPageSocialMedia.Get(); ok {
		links := []model.SocialLink{}
		if val != nil {
			links = append(links, (*val)...)
		}
		m.LandingPageSocialMedia = datatypes.NewJSONType(links)
	}
	if val, ok := p.LandingPageTheme.Get(); ok && val != nil {
		m.LandingPageTheme = datatypes.NewJSONType(*val)
	}
	if val, ok := p.LandingPagePublished.Get(); ok && val != nil {
		m.LandingPagePublished = *val
	}

	// nullable → nil clears
	if val, ok := p.LandingPageSubtitle.Get(); ok {
		m.LandingPageSubtitle = val
	}
	if val, ok := p.LandingPageLogoURL.Get(); ok {
		m.LandingPageLogoURL = val
	}
	if val, ok := p.LandingPageBackgroundImageURL.Get(); ok {
		m.LandingPageBackgroundImageURL = val
	}
	if val, ok := p.LandingPagePrimaryButtonText.Get(); ok {
		m.LandingPagePrimaryButtonText = val
	}
	if val, ok := p.LandingPagePrimaryButtonLink.Get(); ok {
		m.LandingPagePrimaryButtonLink = val
	}
	if val, ok := p.LandingPageSecondaryButtonText.Get(); ok {
		m.LandingPageSecondaryButtonText = val
	}
	if val, ok := p.LandingPageSecondaryButtonLink.Get(); ok {
		m.LandingPageSecondaryButtonLink = val
	}
}

/* =========================================================
   Responses
   ========================================================= */

type LandingPageResponse struct {
	LandingPageID                  uuid.UUID          `json:"landing_page_id"`
	LandingPageOrganizationID      uuid.UUID          `json:"landing_page_organization_id"`
	LandingPageTitle               string             `json:"landing_page_title"`
	LandingPageSubtitle            *string            `json:"landing_page_subtitle,omitempty"`
	LandingPageSlug                string             `json:"landing_page_slug"`
	LandingPageEventInfo           model.EventInfo    `json:"landing_page_event_info"`
	LandingPageFormFields          formfields.Fields  `json:"landing_page_form_fields"`
	LandingPageSocialMedia         []model.SocialLink `json:"landing_page_social_media"`
	LandingPageTheme               model.Theme        `json:"landing_page_theme"`
	LandingPageLogoURL             *string            `json:"landing_page_logo_url,omitempty"`
	LandingPageBackgroundImageURL  *string            `json:"landing_page_background_image_url,omitempty"`
	LandingPagePrimaryButtonText   *string            `json:"landing_page_primary_button_text,omitempty"`
	LandingPagePrimaryButtonLink   *string            `json:"landing_page_primary_button_link,omitempty"`
	LandingPageSecondaryButtonText *string            `json:"landing_page_secondary_button_text,omitempty"`
	LandingPageSecondaryButtonLink *string            `json:"landing_page_secondary_button_link,omitempty"`
	LandingPagePublished           bool               `json:"landing_page_published"`
	LandingPagePublicURL           string             `json:"landing_page_public_url"`
	LandingPageCreatedAt           time.Time          `json:"landing_page_created_at"`
	LandingPageUpdatedAt           time.Time          `json:"landing_page_updated_at"`
}

// PublicPath is where the published page is served.
func PublicPath(slug string) string { return "/e/" + slug }

// ThankYouPath is the confirmation page after a successful submit.
func ThankYouPath(slug string) string { return "/e/" + slug + "/thank-you" }

func FromModel(m *model.LandingPageModel) LandingPageResponse {
	fields := m.Fields()
	if fields == nil {
		fields = formfields.Fields{}
	}
	links := m.SocialLinks()
	if links == nil {
		links = []model.SocialLink{}
	}
	return LandingPageResponse{
		LandingPageID:                  m.LandingPageID,
		LandingPageOrganizationID:      m.LandingPageOrganizationID,
		LandingPageTitle:               m.LandingPageTitle,
		LandingPageSubtitle:            m.LandingPageSubtitle,
		LandingPageSlug:                m.LandingPageSlug,
		LandingPageEventInfo:           m.EventInfo(),
		LandingPageFormFields:          fields,
		LandingPageSocialMedia:         links,
		LandingPageTheme:               m.Theme(),
		LandingPageLogoURL:             m.LandingPageLogoURL,
		LandingPageBackgroundImageURL:  m.LandingPageBackgroundImageURL,
		LandingPagePrimaryButtonText:   m.LandingPagePrimaryButtonText,
		LandingPagePrimaryButtonLink:   m.LandingPagePrimaryButtonLink,
		LandingPageSecondaryButtonText: m.LandingPageSecondaryButtonText,
		LandingPageSecondaryButtonLink: m.LandingPageSecondaryButtonLink,
		LandingPagePublished:           m.LandingPagePublished,
		LandingPagePublicURL:           PublicPath(m.LandingPageSlug),
		LandingPageCreatedAt:           m.LandingPageCreatedAt,
		LandingPageUpdatedAt:           m.LandingPageUpdatedAt,
	}
}

func FromModels(rows []model.LandingPageModel) []LandingPageResponse {
	out := make([]LandingPageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// PublicLandingPageResponse is the read-only shape for the public API; it
// leaves out organization and publish bookkeeping.
type PublicLandingPageResponse struct {
	Title               string             `json:"title"`
	Subtitle            *string            `json:"subtitle,omitempty"`
	Slug                string             `json:"slug"`
	EventInfo           model.EventInfo    `json:"event_info"`
	FormFields          formfields.Fields  `json:"form_fields"`
	SocialMedia         []model.SocialLink `json:"social_media"`
	Theme               model.Theme        `json:"theme"`
	LogoURL             *string            `json:"logo_url,omitempty"`
	BackgroundImageURL  *string            `json:"background_image_url,omitempty"`
	PrimaryButtonText   *string            `json:"primary_button_text,omitempty"`
	PrimaryButtonLink   *string            `json:"primary_button_link,omitempty"`
	SecondaryButtonText *string            `json:"secondary_button_text,omitempty"`
	SecondaryButtonLink *string            `json:"secondary_button_link,omitempty"`
	SubmitURL           string             `json:"submit_url"`
}

func ToPublic(m *model.LandingPageModel) PublicLandingPageResponse {
	r := FromModel(m)
	return PublicLandingPageResponse{
		Title:               r.LandingPageTitle,
		Subtitle:            r.LandingPageSubtitle,
		Slug:                r.LandingPageSlug,
		EventInfo:           r.LandingPageEventInfo,
		FormFields:          r.LandingPageFormFields,
		SocialMedia:         r.LandingPageSocialMedia,
		Theme:               r.LandingPageTheme,
		LogoURL:             r.LandingPageLogoURL,
		BackgroundImageURL:  r.LandingPageBackgroundImageURL,
		PrimaryButtonText:   r.LandingPagePrimaryButtonText,
		PrimaryButtonLink:   r.LandingPagePrimaryButtonLink,
		SecondaryButtonText: r.LandingPageSecondaryButtonText,
		SecondaryButtonLink: r.LandingPageSecondaryButtonLink,
		SubmitURL:           "/api/public/landing-pages/" + r.LandingPageSlug + "/submissions",
	}
}
