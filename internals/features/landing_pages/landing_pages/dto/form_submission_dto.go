package dto

import (
	"time"

	"github.com/google/uuid"

	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
)

type FormSubmissionResponse struct {
	FormSubmissionID            uuid.UUID      `json:"form_submission_id"`
	FormSubmissionLandingPageID uuid.UUID      `json:"form_submission_landing_page_id"`
	FormSubmissionData          map[string]any `json:"form_submission_data"`
	FormSubmissionCreatedAt     time.Time      `json:"form_submission_created_at"`
}

func FromSubmissionModels(rows []model.FormSubmissionModel) []FormSubmissionResponse {
	out := make([]FormSubmissionResponse, 0, len(rows))
	for _, r := range rows {
		data := map[string]any(r.FormSubmissionData)
		if data == nil {
			data = map[string]any{}
		}
		out = append(out, FormSubmissionResponse{
			FormSubmissionID:            r.FormSubmissionID,
			FormSubmissionLandingPageID: r.FormSubmissionLandingPageID,
			FormSubmissionData:          data,
			FormSubmissionCreatedAt:     r.FormSubmissionCreatedAt,
		})
	}
	return out
}

// SubmitAcceptedResponse tells API clients where to send the visitor next.
type SubmitAcceptedResponse struct {
	FormSubmissionID uuid.UUID `json:"form_submission_id"`
	RedirectURL      string    `json:"redirect_url"`
}
