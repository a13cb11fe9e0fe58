package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"eventpages_backend/internals/features/landing_pages/formfields"
	"eventpages_backend/internals/features/landing_pages/landing_pages/model"
	helper "eventpages_backend/internals/helpers"
)

// SubmitResult carries what the caller needs to either redisplay the form
// (Errors non-empty) or confirm (Submission set).
type SubmitResult struct {
	Page       *model.LandingPageModel
	Values     formfields.Values
	Errors     map[string]string
	Submission *model.FormSubmissionModel
}

func (r SubmitResult) OK() bool { return len(r.Errors) == 0 && r.Submission != nil }

// Submit validates a public submission against the published page's schema
// and stores it when valid. collect turns the raw request into values once
// the schema is known.
func (s *Service) Submit(ctx context.Context, slug string, collect func(formfields.Fields) formfields.Values) (SubmitResult, error) {
	page, err := s.GetPublished(ctx, slug)
	if err != nil {
		return SubmitResult{}, err
	}

	fields := page.Fields()
	res := SubmitResult{Page: page, Values: collect(fields)}

	errs, err := formfields.Process(fields, res.Values, func(v formfields.Values) error {
		data := v.Data(fields)
		ids := make([]string, 0, len(data))
		for _, f := range fields {
			if _, ok := data[f.ID]; ok {
				ids = append(ids, f.ID)
			}
		}
		sub := &model.FormSubmissionModel{
			FormSubmissionLandingPageID: page.LandingPageID,
			FormSubmissionData:          datatypes.JSONMap(data),
			FormSubmissionFieldIDs:      pq.StringArray(ids),
		}
		if err := s.Store.CreateSubmission(ctx, sub); err != nil {
			return err
		}
		res.Submission = sub
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}
	res.Errors = errs
	return res, nil
}

func (s *Service) ListSubmissions(ctx context.Context, orgID, pageID uuid.UUID, p helper.Paging) ([]model.FormSubmissionModel, int64, error) {
	if _, err := s.Store.FindPage(ctx, orgID, pageID); err != nil {
		return nil, 0, err
	}
	return s.Store.ListSubmissions(ctx, pageID, p.Offset, p.Limit)
}

type FieldSummary struct {
	FieldID  string               `json:"field_id"`
	Label    string               `json:"label"`
	Type     formfields.FieldType `json:"type"`
	Answered int64                `json:"answered"`
}

type SubmissionSummary struct {
	LandingPageID uuid.UUID      `json:"landing_page_id"`
	Total         int64          `json:"total"`
	Fields        []FieldSummary `json:"fields"`
}

// SubmissionSummary counts answers per field of the current schema, in
// schema order. Answers to fields removed since are not reported.
func (s *Service) SubmissionSummary(ctx context.Context, orgID, pageID uuid.UUID) (SubmissionSummary, error) {
	page, err := s.Store.FindPage(ctx, orgID, pageID)
	if err != nil {
		return SubmissionSummary{}, err
	}
	counts, total, err := s.Store.CountAnswers(ctx, pageID)
	if err != nil {
		return SubmissionSummary{}, err
	}

	fields := page.Fields()
	out := SubmissionSummary{
		LandingPageID: pageID,
		Total:         total,
		Fields:        make([]FieldSummary, 0, len(fields)),
	}
	for _, f := range fields {
		out.Fields = append(out.Fields, FieldSummary{
			FieldID:  f.ID,
			Label:    f.Label,
			Type:     f.Type,
			Answered: counts[f.ID],
		})
	}
	return out, nil
}
