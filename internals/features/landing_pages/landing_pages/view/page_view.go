// Package view renders the public landing page, its thank-you page and the
// admin preview as complete HTML documents.
package view

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/dto"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

// the event description is the only author-supplied HTML on the page
var descriptionPolicy = bluemonday.UGCPolicy()

var (
	reHexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)
	reFontName = regexp.MustCompile(`^[A-Za-z0-9 ,'\-]{1,80}$`)
)

var socialLabels = map[model.SocialPlatform]string{
	model.SocialFacebook:  "Facebook",
	model.SocialTwitter:   "Twitter",
	model.SocialInstagram: "Instagram",
	model.SocialLinkedIn:  "LinkedIn",
	model.SocialYouTube:   "YouTube",
	model.SocialWebsite:   "Website",
	model.SocialOther:     "Link",
}

type PageOptions struct {
	Values formfields.Values
	Errors map[string]string

	// Preview shows a banner and disables the form.
	Preview bool
}

// RenderPage renders the hero, event info, volunteer form and social links.
func RenderPage(m *model.LandingPageModel, opts PageOptions) string {
	var b strings.Builder
	writeHead(&b, m.LandingPageTitle, m.Theme())
	b.WriteString(`<body>`)
	if opts.Preview {
		b.WriteString(`<div class="preview-banner" role="status">Preview mode. Submissions are disabled.</div>`)
	}
	b.WriteString(`<main>`)
	writeHero(&b, m)
	writeEventInfo(&b, m.EventInfo())
	writeForm(&b, m, opts)
	writeSocial(&b, m.SocialLinks())
	b.WriteString(`</main></body></html>`)
	return b.String()
}

// RenderThankYou is the confirmation shown after an accepted submission.
func RenderThankYou(m *model.LandingPageModel) string {
	var b strings.Builder
	writeHead(&b, "Thank you | "+m.LandingPageTitle, m.Theme())
	b.WriteString(`<body><main><section class="section confirmation">`)
	b.WriteString(`<h1>Thank you for signing up!</h1>`)
	b.WriteString(`<p>Your registration for <strong>`)
	b.WriteString(esc(m.LandingPageTitle))
	b.WriteString(`</strong> has been received.</p>`)
	b.WriteString(`<a class="btn btn-primary"`)
	attr(&b, "href", dto.PublicPath(m.LandingPageSlug))
	b.WriteString(`>Back to event page</a>`)
	b.WriteString(`</section>`)
	writeSocial(&b, m.SocialLinks())
	b.WriteString(`</main></body></html>`)
	return b.String()
}

// RenderNotFound is served for unknown and unpublished slugs.
func RenderNotFound() string {
	return RenderMessage("Page not found", "The event page you are looking for does not exist or is no longer available.")
}

// RenderMessage is a bare themed page with a heading and one paragraph.
func RenderMessage(title, message string) string {
	var b strings.Builder
	writeHead(&b, title, model.DefaultTheme())
	b.WriteString(`<body><main><section class="section confirmation"><h1>`)
	b.WriteString(esc(title))
	b.WriteString(`</h1><p>`)
	b.WriteString(esc(message))
	b.WriteString(`</p></section></main></body></html>`)
	return b.String()
}

/* ===============================
   sections
=================================*/

func writeHead(b *strings.Builder, title string, th model.Theme) {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<title>`)
	b.WriteString(esc(title))
	b.WriteString(`</title><style>`)
	b.WriteString(themeCSS(th))
	b.WriteString(baseCSS)
	b.WriteString(`</style></head>`)
}

func writeHero(b *strings.Builder, m *model.LandingPageModel) {
	b.WriteString(`<header class="hero"`)
	if bg := cssURL(deref(m.LandingPageBackgroundImageURL)); bg != "" {
		attr(b, "style", "background-image:url('"+bg+"')")
	}
	b.WriteString(`><div class="hero-inner">`)

	if logo := deref(m.LandingPageLogoURL); logo != "" && dto.IsSafeLink(logo) {
		b.WriteString(`<img class="logo" alt=""`)
		attr(b, "src", logo)
		b.WriteString(`>`)
	}
	b.WriteString(`<h1>`)
	b.WriteString(esc(m.LandingPageTitle))
	b.WriteString(`</h1>`)
	if sub := deref(m.LandingPageSubtitle); sub != "" {
		b.WriteString(`<p class="subtitle">`)
		b.WriteString(esc(sub))
		b.WriteString(`</p>`)
	}

	primary := deref(m.LandingPagePrimaryButtonText)
	secondary := deref(m.LandingPageSecondaryButtonText)
	if primary != "" || secondary != "" {
		b.WriteString(`<div class="hero-actions">`)
		if primary != "" {
			writeButton(b, "btn btn-primary", primary, deref(m.LandingPagePrimaryButtonLink), "#volunteer-form")
		}
		if secondary != "" {
			writeButton(b, "btn btn-secondary", secondary, deref(m.LandingPageSecondaryButtonLink), "#event-info")
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></header>`)
}

func writeButton(b *strings.Builder, class, text, link, fallback string) {
	if !dto.IsSafeLink(link) {
		link = fallback
	}
	b.WriteString(`<a`)
	attr(b, "class", class)
	attr(b, "href", link)
	b.WriteString(`>`)
	b.WriteString(esc(text))
	b.WriteString(`</a>`)
}

func writeEventInfo(b *strings.Builder, ei model.EventInfo) {
	details := [][2]string{
		{"Date", ei.Date},
		{"Time", ei.Time},
		{"Location", ei.Location},
	}
	desc := strings.TrimSpace(descriptionPolicy.Sanitize(ei.Description))

	hasDetail := false
	for _, d := range details {
		if d[1] != "" {
			hasDetail = true
		}
	}
	if !hasDetail && desc == "" {
		return
	}

	b.WriteString(`<section class="section section-secondary" id="event-info"><h2>Event Details</h2>`)
	if hasDetail {
		b.WriteString(`<dl class="event-details">`)
		for _, d := range details {
			if d[1] == "" {
				continue
			}
			b.WriteString(`<div><dt>`)
			b.WriteString(d[0])
			b.WriteString(`</dt><dd>`)
			b.WriteString(esc(d[1]))
			b.WriteString(`</dd></div>`)
		}
		b.WriteString(`</dl>`)
	}
	if desc != "" {
		b.WriteString(`<div class="event-description">`)
		b.WriteString(desc)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</section>`)
}

func writeForm(b *strings.Builder, m *model.LandingPageModel, opts PageOptions) {
	b.WriteString(`<section class="section" id="volunteer-form"><h2>Volunteer Registration</h2>`)
	if len(opts.Errors) > 0 {
		b.WriteString(`<div class="form-alert" role="alert">Please correct the highlighted fields and try again.</div>`)
	}
	b.WriteString(formfields.Render(m.Fields(), formfields.RenderOptions{
		Values:     opts.Values,
		Errors:     opts.Errors,
		Action:     dto.PublicPath(m.LandingPageSlug),
		SubmitText: "Register",
		Disabled:   opts.Preview,
	}))
	b.WriteString(`</section>`)
}

func writeSocial(b *strings.Builder, links []model.SocialLink) {
	safe := make([]model.SocialLink, 0, len(links))
	for _, l := range links {
		if dto.IsSafeLink(l.URL) {
			safe = append(safe, l)
		}
	}
	if len(safe) == 0 {
		return
	}
	b.WriteString(`<section class="section section-primary" id="social-media"><h2>Follow Us</h2><ul class="social-links">`)
	for _, l := range safe {
		label := l.Label
		if label == "" {
			label = socialLabels[l.Platform]
		}
		if label == "" {
			label = l.URL
		}
		b.WriteString(`<li><a target="_blank" rel="noopener noreferrer"`)
		attr(b, "class", "social-"+string(l.Platform))
		attr(b, "href", l.URL)
		b.WriteString(`>`)
		b.WriteString(esc(label))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul></section>`)
}

/* ===============================
   theme
=================================*/

func themeCSS(th model.Theme) string {
	def := model.DefaultTheme()
	color := func(v, fallback string) string {
		if reHexColor.MatchString(v) {
			return v
		}
		return fallback
	}
	font := th.FontFamily
	if !reFontName.MatchString(font) {
		font = def.FontFamily
	}
	radius := "0.5rem"
	switch th.ButtonStyle {
	case model.ButtonSquare:
		radius = "0"
	case model.ButtonPill:
		radius = "9999px"
	}

	var b strings.Builder
	b.WriteString(`:root{--color-primary:`)
	b.WriteString(color(th.PrimaryColor, def.PrimaryColor))
	b.WriteString(`;--color-secondary:`)
	b.WriteString(color(th.SecondaryColor, def.SecondaryColor))
	b.WriteString(`;--color-accent:`)
	b.WriteString(color(th.AccentColor, def.AccentColor))
	b.WriteString(`;--font-family:'`)
	b.WriteString(strings.ReplaceAll(font, "'", ""))
	b.WriteString(`',system-ui,sans-serif;--button-radius:`)
	b.WriteString(radius)
	b.WriteString(`}`)
	return b.String()
}

const baseCSS = `body{margin:0;font-family:var(--font-family);color:#111827;background:#fff}` +
	`.preview-banner{background:var(--color-accent);color:#111827;text-align:center;padding:.5rem;font-weight:600}` +
	`.hero{background:var(--color-secondary) center/cover no-repeat;color:#fff;padding:4rem 1.5rem;text-align:center}` +
	`.hero-inner{max-width:48rem;margin:0 auto}.logo{max-height:80px;margin-bottom:1rem}` +
	`.hero-actions{display:flex;gap:1rem;justify-content:center;margin-top:2rem}` +
	`.btn{display:inline-block;padding:.75rem 1.5rem;border-radius:var(--button-radius);border:0;font:inherit;font-weight:600;text-decoration:none;cursor:pointer}` +
	`.btn-primary{background:var(--color-primary);color:#fff}.btn-secondary{background:#fff;color:var(--color-secondary)}` +
	`.btn[disabled]{opacity:.6;cursor:not-allowed}` +
	`.section{max-width:48rem;margin:0 auto;padding:3rem 1.5rem}` +
	`.section-secondary{background:#f9fafb}.section-primary h2{color:var(--color-primary)}` +
	`.event-details{display:grid;grid-template-columns:repeat(auto-fit,minmax(10rem,1fr));gap:1rem}` +
	`.event-details dt{font-weight:600;color:var(--color-primary)}.event-details dd{margin:0}` +
	`.form-field{margin-bottom:1.25rem}.form-label{display:block;font-weight:600;margin-bottom:.25rem}` +
	`.required{color:#dc2626}.form-description{color:#6b7280;font-size:.875rem;margin:.25rem 0}` +
	`.volunteer-form input:not([type=checkbox]):not([type=radio]),.volunteer-form select,.volunteer-form textarea{width:100%;box-sizing:border-box;padding:.5rem;border:1px solid #d1d5db;border-radius:.375rem;font:inherit}` +
	`.has-error input,.has-error select,.has-error textarea{border-color:#dc2626}` +
	`.form-error{color:#dc2626;font-size:.875rem;margin:.25rem 0 0}` +
	`.form-alert{background:#fef2f2;color:#991b1b;padding:.75rem 1rem;border-radius:.375rem;margin-bottom:1rem}` +
	`.social-links{list-style:none;padding:0;display:flex;gap:1rem;flex-wrap:wrap}` +
	`.social-links a{color:var(--color-primary);font-weight:600}` +
	`.confirmation{text-align:center}`

/* ===============================
   helpers
=================================*/

func esc(s string) string { return html.EscapeString(s) }

func attr(b *strings.Builder, name, value string) {
	b.WriteString(` `)
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(esc(value))
	b.WriteString(`"`)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// cssURL returns raw when it is safe inside url('...') in a style attribute.
func cssURL(raw string) string {
	if raw == "" || !dto.IsSafeLink(raw) || strings.HasPrefix(raw, "#") {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return ""
	}
	if strings.ContainsAny(raw, "'\"()\\ \t\r\n;") {
		return ""
	}
	return raw
}
