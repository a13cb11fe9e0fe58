package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpages_backend/internals/features/landing_pages/landing_pages/route"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service/servicetest"
	helper "eventpages_backend/internals/helpers"
	authMiddleware "eventpages_backend/internals/middlewares/auth"
)

const testSecret = "test-secret"

var orgID = uuid.MustParse("3d5b7f0a-8c21-4e6f-a1b2-6f0e9d8c7b55")

func newApp(t *testing.T) (*fiber.App, *servicetest.MemoryStore) {
	t.Helper()
	store := servicetest.NewMemoryStore()
	svc := service.New(store)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	admin := app.Group("/api/a", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: testSecret}))
	route.MountAdmin(admin, svc)
	route.MountPublic(app, app.Group("/api/public"), svc, 1000)
	return app, store
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func adminToken(t *testing.T) string {
	return token(t, jwt.MapClaims{
		"id":              uuid.NewString(),
		"organization_id": orgID.String(),
		"role":            "admin",
	})
}

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination helper.Pagination   `json:"pagination"`
}

func call(t *testing.T, app *fiber.App, method, path, tok string, body any) (*http.Response, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func getHTML(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

type pageData struct {
	ID        uuid.UUID `json:"landing_page_id"`
	Title     string    `json:"landing_page_title"`
	Slug      string    `json:"landing_page_slug"`
	Published bool      `json:"landing_page_published"`
	PublicURL string    `json:"landing_page_public_url"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

var beachPatch = map[string]any{
	"landing_page_subtitle": "Help us clean the shore",
	"landing_page_event_info": map[string]any{
		"date":     "Saturday, July 12",
		"location": "Ocean Beach",
	},
	"landing_page_form_fields": []map[string]any{
		{"id": "name", "label": "Name", "type": "text", "required": true},
		{"id": "email", "label": "Email", "type": "email", "required": true},
		{"id": "shift", "label": "Shift", "type": "checkbox", "options": []map[string]any{
			{"value": "am", "label": "Morning"},
			{"value": "pm", "label": "Afternoon"},
		}},
	},
	"landing_page_published": true,
}

// createPublished makes a published "Beach Day" page and returns it.
func createPublished(t *testing.T, app *fiber.App, tok string) pageData {
	t.Helper()
	resp, env := call(t, app, http.MethodPost, "/api/a/landing-pages", tok, map[string]any{"landing_page_title": "Beach Day"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	page := decode[pageData](t, env.Data)

	resp, env = call(t, app, http.MethodPatch, "/api/a/landing-pages/"+page.ID.String(), tok, beachPatch)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	return decode[pageData](t, env.Data)
}

func TestAdminAuth(t *testing.T) {
	app, _ := newApp(t)

	t.Run("NoToken", func(t *testing.T) {
		resp, env := call(t, app, http.MethodGet, "/api/a/landing-pages", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("BadSignature", func(t *testing.T) {
		bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": uuid.NewString()}).SignedString([]byte("other"))
		require.NoError(t, err)
		resp, _ := call(t, app, http.MethodGet, "/api/a/landing-pages", bad, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MemberIsForbidden", func(t *testing.T) {
		tok := token(t, jwt.MapClaims{"id": uuid.NewString(), "organization_id": orgID.String(), "role": "member"})
		resp, _ := call(t, app, http.MethodGet, "/api/a/landing-pages", tok, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("NoOrganizationIsForbidden", func(t *testing.T) {
		tok := token(t, jwt.MapClaims{"id": uuid.NewString(), "role": "owner"})
		resp, _ := call(t, app, http.MethodGet, "/api/a/landing-pages", tok, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("RolesClaim", func(t *testing.T) {
		tok := token(t, jwt.MapClaims{"sub": uuid.NewString(), "organization_id": orgID.String(), "roles": []string{"member", "owner"}})
		resp, _ := call(t, app, http.MethodGet, "/api/a/landing-pages", tok, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAdminCRUD(t *testing.T) {
	app, store := newApp(t)
	tok := adminToken(t)

	t.Run("CreateRejectsShortTitle", func(t *testing.T) {
		resp, env := call(t, app, http.MethodPost, "/api/a/landing-pages", tok, map[string]any{"landing_page_title": "ab"})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, []string{"Title must be at least 3 characters long"}, env.Errors["landing_page_title"])
		assert.Zero(t, store.Writes)
	})

	page := createPublished(t, app, tok)
	assert.Equal(t, "beach-day", page.Slug)
	assert.True(t, page.Published)
	assert.Equal(t, "/e/beach-day", page.PublicURL)

	t.Run("GetAndList", func(t *testing.T) {
		resp, env := call(t, app, http.MethodGet, "/api/a/landing-pages/"+page.ID.String(), tok, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Beach Day", decode[pageData](t, env.Data).Title)

		resp, env = call(t, app, http.MethodGet, "/api/a/landing-pages?per_page=10", tok, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]pageData](t, env.Data), 1)
		assert.EqualValues(t, 1, env.Pagination.Total)
	})

	t.Run("OtherOrganizationSeesNothing", func(t *testing.T) {
		other := token(t, jwt.MapClaims{"id": uuid.NewString(), "organization_id": uuid.NewString(), "role": "admin"})
		resp, env := call(t, app, http.MethodGet, "/api/a/landing-pages/"+page.ID.String(), other, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Landing page not found", env.Message)
	})

	t.Run("BadID", func(t *testing.T) {
		resp, _ := call(t, app, http.MethodGet, "/api/a/landing-pages/not-a-uuid", tok, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("PatchInvalidSlug", func(t *testing.T) {
		resp, env := call(t, app, http.MethodPatch, "/api/a/landing-pages/"+page.ID.String(), tok, map[string]any{"landing_page_slug": "Beach Day"})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, []string{"URL must contain only lowercase letters, numbers, and hyphens"}, env.Errors["landing_page_slug"])
	})

	t.Run("DuplicateAndSlugConflict", func(t *testing.T) {
		resp, env := call(t, app, http.MethodPost, "/api/a/landing-pages/"+page.ID.String()+"/duplicate", tok, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		dup := decode[pageData](t, env.Data)
		assert.Equal(t, "Beach Day (Copy)", dup.Title)
		assert.Equal(t, "beach-day-copy", dup.Slug)
		assert.False(t, dup.Published)

		resp, env = call(t, app, http.MethodPatch, "/api/a/landing-pages/"+dup.ID.String(), tok, map[string]any{"landing_page_slug": "beach-day"})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "This URL is already taken. Please choose a different one.", env.Message)
	})

	t.Run("PatchUnsafeLinkIsRejected", func(t *testing.T) {
		resp, _ := call(t, app, http.MethodPatch, "/api/a/landing-pages/"+page.ID.String(), tok, map[string]any{"landing_page_primary_button_link": "javascript:alert(1)"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Preview", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/a/landing-pages/"+page.ID.String()+"/preview", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `class="preview-banner"`)
		assert.Contains(t, string(body), `disabled>Register</button>`)
	})

	t.Run("Delete", func(t *testing.T) {
		resp, _ := call(t, app, http.MethodDelete, "/api/a/landing-pages/"+page.ID.String(), tok, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, _ = call(t, app, http.MethodDelete, "/api/a/landing-pages/"+page.ID.String(), tok, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		resp, _ = getHTML(t, app, "/e/beach-day")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestPublicForm(t *testing.T) {
	app, store := newApp(t)
	tok := adminToken(t)
	page := createPublished(t, app, tok)

	t.Run("Page", func(t *testing.T) {
		resp, body := getHTML(t, app, "/e/beach-day")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, body, "<h1>Beach Day</h1>")
		assert.Contains(t, body, `action="/e/beach-day"`)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		resp, body := getHTML(t, app, "/e/nope")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "Page not found")
	})

	t.Run("InvalidSubmissionRedisplays", func(t *testing.T) {
		resp, body := postForm(t, app, "/e/beach-day", url.Values{"name": {"Ana"}, "email": {"nope"}})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "Please enter a valid email address")
		assert.Contains(t, body, `value="Ana"`)
		assert.Empty(t, store.Submissions())
	})

	t.Run("ValidSubmissionRedirects", func(t *testing.T) {
		resp, _ := postForm(t, app, "/e/beach-day", url.Values{
			"name":  {"Ana"},
			"email": {"ana@example.org"},
			"shift": {"am", "pm"},
			"extra": {"dropped"},
		})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/e/beach-day/thank-you", resp.Header.Get("Location"))

		subs := store.Submissions()
		require.Len(t, subs, 1)
		assert.Equal(t, "Ana", subs[0].FormSubmissionData["name"])
		assert.Equal(t, []string{"am", "pm"}, subs[0].FormSubmissionData["shift"])
		assert.NotContains(t, subs[0].FormSubmissionData, "extra")
	})

	t.Run("ThankYou", func(t *testing.T) {
		resp, body := getHTML(t, app, "/e/beach-day/thank-you")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Thank you for signing up!")
	})

	t.Run("JSONAPI", func(t *testing.T) {
		resp, env := call(t, app, http.MethodGet, "/api/public/landing-pages/beach-day", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		pub := decode[map[string]any](t, env.Data)
		assert.Equal(t, "/api/public/landing-pages/beach-day/submissions", pub["submit_url"])
		assert.NotContains(t, pub, "landing_page_organization_id")

		resp, env = call(t, app, http.MethodPost, "/api/public/landing-pages/beach-day/submissions", "", map[string]any{"email": "x"})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, []string{"Name is required"}, env.Errors["name"])
		assert.Equal(t, []string{"Please enter a valid email address"}, env.Errors["email"])

		resp, env = call(t, app, http.MethodPost, "/api/public/landing-pages/beach-day/submissions", "", map[string]any{
			"name":  "Ben",
			"email": "ben@example.org",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		acc := decode[map[string]any](t, env.Data)
		assert.Equal(t, "/e/beach-day/thank-you", acc["redirect_url"])
	})

	t.Run("UnpublishedIsHidden", func(t *testing.T) {
		other := createPublished(t, app, tok)
		resp, _ := call(t, app, http.MethodPatch, "/api/a/landing-pages/"+other.ID.String(), tok, map[string]any{"landing_page_published": false})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, _ = getHTML(t, app, "/e/"+other.Slug)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		resp, _ = call(t, app, http.MethodGet, "/api/public/landing-pages/"+other.Slug, "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("SubmissionsAndSummary", func(t *testing.T) {
		resp, env := call(t, app, http.MethodGet, "/api/a/landing-pages/"+page.ID.String()+"/submissions", tok, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		subs := decode[[]map[string]any](t, env.Data)
		require.Len(t, subs, 2)
		// newest first
		assert.Equal(t, "Ben", subs[0]["form_submission_data"].(map[string]any)["name"])

		resp, env = call(t, app, http.MethodGet, "/api/a/landing-pages/"+page.ID.String()+"/submissions/summary", tok, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		sum := decode[service.SubmissionSummary](t, env.Data)
		assert.EqualValues(t, 2, sum.Total)
		require.Len(t, sum.Fields, 3)
		assert.EqualValues(t, 2, sum.Fields[0].Answered)
		assert.EqualValues(t, 1, sum.Fields[2].Answered)
	})
}

func TestApplyFields(t *testing.T) {
	app, store := newApp(t)
	tok := adminToken(t)

	t.Run("AddAndUpdate", func(t *testing.T) {
		resp, env := call(t, app, http.MethodPost, "/api/a/landing-pages/fields/apply", tok, map[string]any{
			"fields": []map[string]any{
				{"id": "name", "label": "Name", "type": "text", "required": true},
			},
			"ops": []map[string]any{
				{"op": "update_field", "field_id": "name", "patch": map[string]any{"label": "Full name"}},
				{"op": "add_field", "type": "radio"},
			},
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
		out := decode[struct {
			Fields []struct {
				ID      string `json:"id"`
				Label   string `json:"label"`
				Type    string `json:"type"`
				Options []any  `json:"options"`
			} `json:"fields"`
			Valid       bool   `json:"valid"`
			PreviewHTML string `json:"preview_html"`
		}](t, env.Data)

		require.Len(t, out.Fields, 2)
		assert.Equal(t, "Full name", out.Fields[0].Label)
		assert.Equal(t, "radio", out.Fields[1].Type)
		assert.Equal(t, "New Field", out.Fields[1].Label)
		assert.Len(t, out.Fields[1].Options, 1)
		assert.True(t, out.Valid)
		assert.Contains(t, out.PreviewHTML, "Full name")
		assert.Zero(t, store.Writes)
	})

	t.Run("UnknownFieldFails", func(t *testing.T) {
		resp, env := call(t, app, http.MethodPost, "/api/a/landing-pages/fields/apply", tok, map[string]any{
			"ops": []map[string]any{{"op": "remove_field", "field_id": "ghost"}},
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.NotEmpty(t, env.Errors["ops"])
	})

	t.Run("BadOp", func(t *testing.T) {
		resp, _ := call(t, app, http.MethodPost, "/api/a/landing-pages/fields/apply", tok, map[string]any{
			"ops": []map[string]any{{"op": "explode", "field_id": "x"}},
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
