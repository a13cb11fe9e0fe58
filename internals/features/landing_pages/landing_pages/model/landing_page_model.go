// file: internals/features/landing_pages/landing_pages/model/landing_page_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"eventpages_backend/internals/features/landing_pages/formfields"
)

/* =========================================================
   Embedded documents (jsonb)
   ========================================================= */

type EventInfo struct {
	Date        string `json:"date" yaml:"date" validate:"max=120"`
	Time        string `json:"time" yaml:"time" validate:"max=120"`
	Location    string `json:"location" yaml:"location" validate:"max=300"`
	Description string `json:"description" yaml:"description" validate:"max=20000"`
}

type SocialPlatform string

const (
	SocialFacebook  SocialPlatform = "facebook"
	SocialTwitter   SocialPlatform = "twitter"
	SocialInstagram SocialPlatform = "instagram"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialYouTube   SocialPlatform = "youtube"
	SocialWebsite   SocialPlatform = "website"
	SocialOther     SocialPlatform = "other"
)

type SocialLink struct {
	Platform SocialPlatform `json:"platform" yaml:"platform" validate:"required,oneof=facebook twitter instagram linkedin youtube website other"`
	URL      string         `json:"url" yaml:"url" validate:"required,url,max=500"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty" validate:"max=80"`
}

type ButtonStyle string

const (
	ButtonRounded ButtonStyle = "rounded"
	ButtonSquare  ButtonStyle = "square"
	ButtonPill    ButtonStyle = "pill"
)

type Theme struct {
	PrimaryColor   string      `json:"primary_color" yaml:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string      `json:"secondary_color" yaml:"secondary_color" validate:"required,hexcolor"`
	AccentColor    string      `json:"accent_color" yaml:"accent_color" validate:"required,hexcolor"`
	FontFamily     string      `json:"font_family" yaml:"font_family" validate:"required,max=80"`
	ButtonStyle    ButtonStyle `json:"button_style" yaml:"button_style" validate:"required,oneof=rounded square pill"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#3B82F6",
		SecondaryColor: "#1F2937",
		AccentColor:    "#F59E0B",
		FontFamily:     "Inter",
		ButtonStyle:    ButtonRounded,
	}
}

// WithDefaults fills blank members from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	if t.PrimaryColor == "" {
		t.PrimaryColor = d.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = d.SecondaryColor
	}
	if t.AccentColor == "" {
		t.AccentColor = d.AccentColor
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	if t.ButtonStyle == "" {
		t.ButtonStyle = d.ButtonStyle
	}
	return t
}

/* =========================================================
   Landing page
   ========================================================= */

type LandingPageModel struct {
	LandingPageID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:landing_page_id" json:"landing_page_id"`
	LandingPageOrganizationID uuid.UUID `gorm:"type:uuid;not null;column:landing_page_organization_id;uniqueIndex:uq_landing_page_org_slug,priority:1;index:idx_landing_page_org_updated,priority:1" json:"landing_page_organization_id"`

	LandingPageTitle    string  `gorm:"type:varchar(200);not null;column:landing_page_title" json:"landing_page_title"`
	LandingPageSubtitle *string `gorm:"type:varchar(300);column:landing_page_subtitle" json:"landing_page_subtitle,omitempty"`
	LandingPageSlug     string  `gorm:"type:varchar(160);not null;column:landing_page_slug;uniqueIndex:uq_landing_page_org_slug,priority:2;index:idx_landing_page_slug_published,priority:1" json:"landing_page_slug"`

	LandingPageEventInfo   datatypes.JSONType[EventInfo]         `gorm:"type:jsonb;not null;column:landing_page_event_info" json:"landing_page_event_info"`
	LandingPageFormFields  datatypes.JSONType[formfields.Fields] `gorm:"type:jsonb;not null;column:landing_page_form_fields" json:"landing_page_form_fields"`
	LandingPageSocialMedia datatypes.JSONType[[]SocialLink]      `gorm:"type:jsonb;not null;column:landing_page_social_media" json:"landing_page_social_media"`
	LandingPageTheme       datatypes.JSONType[Theme]             `gorm:"type:jsonb;not null;column:landing_page_theme" json:"landing_page_theme"`

	LandingPageLogoURL             *string `gorm:"type:text;column:landing_page_logo_url" json:"landing_page_logo_url,omitempty"`
	LandingPageBackgroundImageURL  *string `gorm:"type:text;column:landing_page_background_image_url" json:"landing_page_background_image_url,omitempty"`
	LandingPagePrimaryButtonText   *string `gorm:"type:varchar(80);column:landing_page_primary_button_text" json:"landing_page_primary_button_text,omitempty"`
	LandingPagePrimaryButtonLink   *string `gorm:"type:text;column:landing_page_primary_button_link" json:"landing_page_primary_button_link,omitempty"`
	LandingPageSecondaryButtonText *string `gorm:"type:varchar(80);column:landing_page_secondary_button_text" json:"landing_page_secondary_button_text,omitempty"`
	LandingPageSecondaryButtonLink *string `gorm:"type:text;column:landing_page_secondary_button_link" json:"landing_page_secondary_button_link,omitempty"`

	LandingPagePublished bool `gorm:"not null;default:false;column:landing_page_published;index:idx_landing_page_slug_published,priority:2" json:"landing_page_published"`

	LandingPageCreatedAt time.Time `gorm:"column:landing_page_created_at;autoCreateTime" json:"landing_page_created_at"`
	LandingPageUpdatedAt time.Time `gorm:"column:landing_page_updated_at;autoUpdateTime;index:idx_landing_page_org_updated,priority:2,sort:desc" json:"landing_page_updated_at"`
}

func (LandingPageModel) TableName() string { return "landing_pages" }

// NewLandingPage returns an unpublished page with empty collections and the
// default theme.
func NewLandingPage(orgID uuid.UUID, title, slug string) *LandingPageModel {
	return &LandingPageModel{
		LandingPageOrganizationID: orgID,
		LandingPageTitle:          title,
		LandingPageSlug:           slug,
		LandingPageEventInfo:      datatypes.NewJSONType(EventInfo{}),
		LandingPageFormFields:     datatypes.NewJSONType(formfields.Fields{}),
		LandingPageSocialMedia:    datatypes.NewJSONType([]SocialLink{}),
		LandingPageTheme:          datatypes.NewJSONType(DefaultTheme()),
		LandingPagePublished:      false,
	}
}

func (m *LandingPageModel) Fields() formfields.Fields { return m.LandingPageFormFields.Data() }

func (m *LandingPageModel) SocialLinks() []SocialLink { return m.LandingPageSocialMedia.Data() }

func (m *LandingPageModel) EventInfo() EventInfo { return m.LandingPageEventInfo.Data() }

func (m *LandingPageModel) Theme() Theme { return m.LandingPageTheme.Data().WithDefaults() }

// Copy returns a deep copy: the embedded documents share no memory with m.
// Identity and timestamps are kept; callers that need a new row reset them.
func (m *LandingPageModel) Copy() *LandingPageModel {
	cp := *m
	cp.LandingPageSubtitle = clonePtr(m.LandingPageSubtitle)
	cp.LandingPageLogoURL = clonePtr(m.LandingPageLogoURL)
	cp.LandingPageBackgroundImageURL = clonePtr(m.LandingPageBackgroundImageURL)
	cp.LandingPagePrimaryButtonText = clonePtr(m.LandingPagePrimaryButtonText)
	cp.LandingPagePrimaryButtonLink = clonePtr(m.LandingPagePrimaryButtonLink)
	cp.LandingPageSecondaryButtonText = clonePtr(m.LandingPageSecondaryButtonText)
	cp.LandingPageSecondaryButtonLink = clonePtr(m.LandingPageSecondaryButtonLink)

	cp.LandingPageEventInfo = datatypes.NewJSONType(m.EventInfo())
	cp.LandingPageFormFields = datatypes.NewJSONType(m.Fields().Clone())
	cp.LandingPageSocialMedia = datatypes.NewJSONType(append([]SocialLink{}, m.SocialLinks()...))
	cp.LandingPageTheme = datatypes.NewJSONType(m.LandingPageTheme.Data())
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
