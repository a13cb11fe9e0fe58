package view

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

func strPtr(s string) *string { return &s }

func beachDay() *model.LandingPageModel {
	m := model.NewLandingPage(uuid.New(), "Beach Day", "beach-day")
	m.LandingPageSubtitle = strPtr("Help us clean the shore")
	m.LandingPagePrimaryButtonText = strPtr("Sign up")
	m.LandingPagePrimaryButtonLink = strPtr("#volunteer-form")
	m.LandingPageEventInfo = datatypes.NewJSONType(model.EventInfo{
		Date:        "Saturday, July 12",
		Location:    "Ocean Beach",
		Description: `<p>Bring <strong>gloves</strong></p><script>alert(1)</script>`,
	})
	m.LandingPageFormFields = datatypes.NewJSONType(formfields.Fields{
		{ID: "name", Label: "Name", Type: formfields.TypeText, Required: true},
		{ID: "email", Label: "Email", Type: formfields.TypeEmail, Required: true},
	})
	m.LandingPageSocialMedia = datatypes.NewJSONType([]model.SocialLink{
		{Platform: model.SocialInstagram, URL: "https://instagram.com/beachday"},
		{Platform: model.SocialOther, URL: "javascript:alert(1)", Label: "Bad"},
	})
	m.LandingPagePublished = true
	return m
}

func TestRenderPage(t *testing.T) {
	t.Run("Sections", func(t *testing.T) {
		out := RenderPage(beachDay(), PageOptions{})

		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, `<title>Beach Day</title>`)
		assert.Contains(t, out, `<h1>Beach Day</h1>`)
		assert.Contains(t, out, `<p class="subtitle">Help us clean the shore</p>`)
		assert.Contains(t, out, `href="#volunteer-form">Sign up</a>`)
		assert.Contains(t, out, `id="event-info"`)
		assert.Contains(t, out, `<dt>Date</dt><dd>Saturday, July 12</dd>`)
		assert.NotContains(t, out, `<dt>Time</dt>`)
		assert.Contains(t, out, `id="volunteer-form"`)
		assert.Contains(t, out, `action="/e/beach-day"`)
		assert.Contains(t, out, `>Register</button>`)
		assert.Contains(t, out, `id="social-media"`)
		assert.Contains(t, out, `rel="noopener noreferrer"`)
		assert.Contains(t, out, `>Instagram</a>`)
		assert.NotContains(t, out, "preview-banner\"")
	})

	t.Run("DescriptionIsSanitized", func(t *testing.T) {
		out := RenderPage(beachDay(), PageOptions{})
		assert.Contains(t, out, `<strong>gloves</strong>`)
		assert.NotContains(t, out, `<script>`)
	})

	t.Run("UnsafeLinksAreDropped", func(t *testing.T) {
		m := beachDay()
		m.LandingPagePrimaryButtonLink = strPtr("javascript:alert(1)")
		out := RenderPage(m, PageOptions{})
		assert.NotContains(t, out, "javascript:")
		assert.Contains(t, out, `href="#volunteer-form">Sign up</a>`)
	})

	t.Run("EmptySectionsAreOmitted", func(t *testing.T) {
		m := model.NewLandingPage(uuid.New(), "Bare", "bare")
		out := RenderPage(m, PageOptions{})
		assert.NotContains(t, out, `id="event-info"`)
		assert.NotContains(t, out, `id="social-media"`)
		assert.NotContains(t, out, `class="hero-actions"`)
		assert.Contains(t, out, `id="volunteer-form"`)
	})

	t.Run("TitleIsEscaped", func(t *testing.T) {
		m := model.NewLandingPage(uuid.New(), `<b>Fun & Sun</b>`, "fun")
		out := RenderPage(m, PageOptions{})
		assert.Contains(t, out, `<h1>&lt;b&gt;Fun &amp; Sun&lt;/b&gt;</h1>`)
	})

	t.Run("PreviewDisablesTheForm", func(t *testing.T) {
		out := RenderPage(beachDay(), PageOptions{Preview: true})
		assert.Contains(t, out, `class="preview-banner"`)
		assert.Contains(t, out, `class="btn btn-primary" disabled>Register</button>`)
	})

	t.Run("ErrorsAndValuesAreShown", func(t *testing.T) {
		out := RenderPage(beachDay(), PageOptions{
			Values: formfields.Values{"name": {"Ana"}},
			Errors: map[string]string{"email": "Email is required"},
		})
		assert.Contains(t, out, `class="form-alert"`)
		assert.Contains(t, out, `value="Ana"`)
		assert.Contains(t, out, `Email is required`)
	})
}

func TestThemeCSS(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		css := themeCSS(model.DefaultTheme())
		assert.Contains(t, css, "--color-primary:#3B82F6")
		assert.Contains(t, css, "--color-secondary:#1F2937")
		assert.Contains(t, css, "--color-accent:#F59E0B")
		assert.Contains(t, css, "--font-family:'Inter'")
		assert.Contains(t, css, "--button-radius:0.5rem")
	})

	t.Run("ButtonStyles", func(t *testing.T) {
		th := model.DefaultTheme()
		th.ButtonStyle = model.ButtonPill
		assert.Contains(t, themeCSS(th), "--button-radius:9999px")
		th.ButtonStyle = model.ButtonSquare
		assert.Contains(t, themeCSS(th), "--button-radius:0}")
	})

	t.Run("InvalidValuesFallBack", func(t *testing.T) {
		th := model.Theme{
			PrimaryColor:   "red;}body{display:none",
			SecondaryColor: "#ABC",
			AccentColor:    "",
			FontFamily:     "x}</style><script>",
		}
		css := themeCSS(th)
		assert.Contains(t, css, "--color-primary:#3B82F6")
		assert.Contains(t, css, "--color-secondary:#ABC")
		assert.Contains(t, css, "--color-accent:#F59E0B")
		assert.Contains(t, css, "--font-family:'Inter'")
		assert.NotContains(t, css, "script")
	})
}

func TestCSSURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.org/beach.jpg", cssURL("https://cdn.example.org/beach.jpg"))
	assert.Equal(t, "/static/bg.png", cssURL("/static/bg.png"))
	assert.Empty(t, cssURL("javascript:alert(1)"))
	assert.Empty(t, cssURL("https://x.org/a.png');background:url('evil"))
	assert.Empty(t, cssURL("#top"))
	assert.Empty(t, cssURL("mailto:a@b.co"))
}

func TestRenderThankYouAndNotFound(t *testing.T) {
	out := RenderThankYou(beachDay())
	assert.Contains(t, out, "Thank you for signing up!")
	assert.Contains(t, out, `<strong>Beach Day</strong>`)
	assert.Contains(t, out, `href="/e/beach-day"`)

	nf := RenderNotFound()
	assert.Contains(t, nf, "<h1>Page not found</h1>")
}
