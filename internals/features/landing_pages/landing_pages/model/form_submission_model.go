// file: internals/features/landing_pages/landing_pages/model/form_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// FormSubmissionModel is written once per accepted public submit and never
// updated. Rows go away with their landing page.
type FormSubmissionModel struct {
	FormSubmissionID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:form_submission_id" json:"form_submission_id"`
	FormSubmissionLandingPageID uuid.UUID `gorm:"type:uuid;not null;column:form_submission_landing_page_id;index:idx_form_submission_page_created,priority:1" json:"form_submission_landing_page_id"`

	// field id → string (or []string for checkbox fields)
	FormSubmissionData datatypes.JSONMap `gorm:"type:jsonb;not null;column:form_submission_data" json:"form_submission_data"`

	// ids of the fields answered in this submission; feeds the per-field summary
	FormSubmissionFieldIDs pq.StringArray `gorm:"type:text[];not null;default:'{}';column:form_submission_field_ids" json:"form_submission_field_ids"`

	FormSubmissionCreatedAt time.Time `gorm:"column:form_submission_created_at;autoCreateTime;index:idx_form_submission_page_created,priority:2,sort:desc" json:"form_submission_created_at"`

	LandingPage *LandingPageModel `gorm:"foreignKey:FormSubmissionLandingPageID;references:LandingPageID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FormSubmissionModel) TableName() string { return "form_submissions" }
