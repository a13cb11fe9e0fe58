package controller

import (
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/dto"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	"eventpages_backend/internals/features/landing_pages/landing_pages/view"
	helper "eventpages_backend/internals/helpers"
)

// PublicController serves published pages to visitors: the HTML page with
// its form, and a JSON API with the same semantics.
type PublicController struct {
	Svc *service.Service
}

func NewPublicController(svc *service.Service) *PublicController {
	return &PublicController{Svc: svc}
}

func htmlError(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, service.ErrLandingPageNotFound) {
		return sendHTML(c, fiber.StatusNotFound, view.RenderNotFound())
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return sendHTML(c, fiber.StatusInternalServerError,
		view.RenderMessage("Something went wrong", "We could not process your request. Please try again later."))
}

// GET /e/:slug
func (ctl *PublicController) Page(c *fiber.Ctx) error {
	m, err := ctl.Svc.GetPublished(c.UserContext(), c.Params("slug"))
	if err != nil {
		return htmlError(c, "render landing page", err)
	}
	return sendHTML(c, fiber.StatusOK, view.RenderPage(m, view.PageOptions{}))
}

// POST /e/:slug
//
// Invalid input re-renders the page with errors and the visitor's values;
// a stored submission redirects to the thank-you page.
func (ctl *PublicController) Submit(c *fiber.Ctx) error {
	form := formValues(c)
	res, err := ctl.Svc.Submit(c.UserContext(), c.Params("slug"), func(fields formfields.Fields) formfields.Values {
		return formfields.Collect(fields, form)
	})
	if err != nil {
		return htmlError(c, "submit landing page form", err)
	}
	if !res.OK() {
		return sendHTML(c, fiber.StatusUnprocessableEntity, view.RenderPage(res.Page, view.PageOptions{
			Values: res.Values,
			Errors: res.Errors,
		}))
	}
	log.Printf("[INFO] submission stored id=%s page=%s", res.Submission.FormSubmissionID, res.Page.LandingPageID)
	return c.Redirect(dto.ThankYouPath(res.Page.LandingPageSlug), fiber.StatusSeeOther)
}

// GET /e/:slug/thank-you
func (ctl *PublicController) ThankYou(c *fiber.Ctx) error {
	m, err := ctl.Svc.GetPublished(c.UserContext(), c.Params("slug"))
	if err != nil {
		return htmlError(c, "render thank-you page", err)
	}
	return sendHTML(c, fiber.StatusOK, view.RenderThankYou(m))
}

// GET /api/public/landing-pages/:slug
func (ctl *PublicController) GetJSON(c *fiber.Ctx) error {
	m, err := ctl.Svc.GetPublished(c.UserContext(), c.Params("slug"))
	if err != nil {
		return serviceError(c, "get public landing page", err)
	}
	return helper.JsonOK(c, "ok", dto.ToPublic(m))
}

// POST /api/public/landing-pages/:slug/submissions
//
// Body is a JSON object of field id to string or string array.
func (ctl *PublicController) SubmitJSON(c *fiber.Ctx) error {
	raw := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&raw); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := ctl.Svc.Submit(c.UserContext(), c.Params("slug"), func(fields formfields.Fields) formfields.Values {
		return formfields.CollectMap(fields, raw)
	})
	if err != nil {
		return serviceError(c, "submit landing page form", err)
	}
	if !res.OK() {
		return helper.JsonValidationError(c, helper.FieldErrors(res.Errors))
	}
	log.Printf("[INFO] submission stored id=%s page=%s", res.Submission.FormSubmissionID, res.Page.LandingPageID)
	return helper.JsonCreated(c, "Thank you for signing up!", dto.SubmitAcceptedResponse{
		FormSubmissionID: res.Submission.FormSubmissionID,
		RedirectURL:      dto.ThankYouPath(res.Page.LandingPageSlug),
	})
}

// formValues reads an urlencoded or multipart body into url.Values.
func formValues(c *fiber.Ctx) url.Values {
	out := url.Values{}
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		if mf, err := c.MultipartForm(); err == nil {
			for k, vs := range mf.Value {
				out[k] = append(out[k], vs...)
			}
		}
		return out
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		out.Add(string(k), string(v))
	})
	return out
}
