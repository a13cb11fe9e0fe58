package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/dto"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	"eventpages_backend/internals/features/landing_pages/landing_pages/view"
	helper "eventpages_backend/internals/helpers"
	helperAuth "eventpages_backend/internals/helpers/auth"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type LandingPageController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewLandingPageController(svc *service.Service) *LandingPageController {
	return &LandingPageController{Svc: svc, Validator: validator.New()}
}

// serviceError maps service errors onto the JSON envelope. Unknown errors
// are logged and hidden behind a generic 500.
func serviceError(c *fiber.Ctx, op string, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(helper.ErrorResponse{
				Success:   false,
				Message:   ve.Message,
				ErrorCode: "CONFLICT",
				Errors:    map[string][]string{ve.Field: {ve.Message}},
			})
		}
		return helper.JsonValidationError(c, map[string][]string{ve.Field: {ve.Message}})
	case errors.Is(err, service.ErrSlugTaken):
		return helper.JsonError(c, fiber.StatusConflict, service.MsgSlugTaken)
	case errors.Is(err, service.ErrLandingPageNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, service.MsgNotFound)
	default:
		log.Printf("[ERROR] %s: %v", op, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// parseID returns a *fiber.Error so the app error handler renders it.
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid landing page id")
	}
	return id, nil
}

// authAndID resolves the caller and the :id param for the page routes.
func authAndID(c *fiber.Ctx) (helperAuth.AuthContext, uuid.UUID, error) {
	ac, err := helperAuth.GetAuthContext(c)
	if err != nil {
		return ac, uuid.Nil, err
	}
	id, err := parseID(c)
	return ac, id, err
}

// GET /api/a/landing-pages?page=&per_page=
func (ctl *LandingPageController) List(c *fiber.Ctx) error {
	ac, err := helperAuth.GetAuthContext(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, defaultPerPage, maxPerPage)

	rows, total, err := ctl.Svc.List(c.UserContext(), ac.OrganizationID, p)
	if err != nil {
		return serviceError(c, "list landing pages", err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), len(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/landing-pages
func (ctl *LandingPageController) Create(c *fiber.Ctx) error {
	ac, err := helperAuth.GetAuthContext(c)
	if err != nil {
		return err
	}

	var req dto.CreateLandingPageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Svc.Create(c.UserContext(), ac.OrganizationID, req.LandingPageTitle)
	if err != nil {
		return serviceError(c, "create landing page", err)
	}
	log.Printf("[INFO] landing page created id=%s org=%s slug=%s", m.LandingPageID, ac.OrganizationID, m.LandingPageSlug)
	return helper.JsonCreated(c, "Landing page created", dto.FromModel(m))
}

// GET /api/a/landing-pages/:id
func (ctl *LandingPageController) Get(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), ac.OrganizationID, id)
	if err != nil {
		return serviceError(c, "get landing page", err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PATCH /api/a/landing-pages/:id
func (ctl *LandingPageController) Patch(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}

	var req dto.PatchLandingPageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.ValidatePartial(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Svc.Update(c.UserContext(), ac.OrganizationID, id, func(m *model.LandingPageModel) {
		req.ApplyPatch(m)
	})
	if err != nil {
		return serviceError(c, "update landing page", err)
	}
	return helper.JsonUpdated(c, "Landing page updated", dto.FromModel(m))
}

// DELETE /api/a/landing-pages/:id
func (ctl *LandingPageController) Delete(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), ac.OrganizationID, id); err != nil {
		return serviceError(c, "delete landing page", err)
	}
	log.Printf("[INFO] landing page deleted id=%s org=%s", id, ac.OrganizationID)
	return helper.JsonDeleted(c, "Landing page deleted", fiber.Map{"landing_page_id": id})
}

// POST /api/a/landing-pages/:id/duplicate
func (ctl *LandingPageController) Duplicate(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}

	var req dto.DuplicateLandingPageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := ctl.Svc.Duplicate(c.UserContext(), ac.OrganizationID, id, req.LandingPageTitle)
	if err != nil {
		return serviceError(c, "duplicate landing page", err)
	}
	log.Printf("[INFO] landing page duplicated from=%s id=%s slug=%s", id, m.LandingPageID, m.LandingPageSlug)
	return helper.JsonCreated(c, "Landing page duplicated", dto.FromModel(m))
}

// GET /api/a/landing-pages/:id/preview renders the page whatever its
// publish state, with the form disabled.
func (ctl *LandingPageController) Preview(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), ac.OrganizationID, id)
	if err != nil {
		return serviceError(c, "preview landing page", err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return sendHTML(c, fiber.StatusOK, view.RenderPage(m, view.PageOptions{Preview: true}))
}

// GET /api/a/landing-pages/:id/submissions?page=&per_page=
func (ctl *LandingPageController) Submissions(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, defaultPerPage, maxPerPage)

	rows, total, err := ctl.Svc.ListSubmissions(c.UserContext(), ac.OrganizationID, id, p)
	if err != nil {
		return serviceError(c, "list submissions", err)
	}
	return helper.JsonList(c, "ok", dto.FromSubmissionModels(rows), len(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/landing-pages/:id/submissions/summary
func (ctl *LandingPageController) SubmissionSummary(c *fiber.Ctx) error {
	ac, id, err := authAndID(c)
	if err != nil {
		return err
	}
	sum, err := ctl.Svc.SubmissionSummary(c.UserContext(), ac.OrganizationID, id)
	if err != nil {
		return serviceError(c, "submission summary", err)
	}
	return helper.JsonOK(c, "ok", sum)
}

// POST /api/a/landing-pages/fields/apply
//
// Replays editor ops over a field list and returns the result with a
// disabled preview of the form. Nothing is stored.
func (ctl *LandingPageController) ApplyFields(c *fiber.Ctx) error {
	if _, err := helperAuth.GetAuthContext(c); err != nil {
		return err
	}

	var req dto.ApplyFieldOpsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validator); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	draft, err := req.Apply()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"ops": {err.Error()}})
	}

	resp := dto.ApplyFieldOpsResponse{Fields: draft.Fields(), Valid: true}
	if _, err := draft.Commit(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	resp.PreviewHTML = formfields.Render(resp.Fields, formfields.RenderOptions{
		SubmitText: "Register",
		Disabled:   true,
	})
	return helper.JsonOK(c, "ok", resp)
}

func sendHTML(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(body)
}
