package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventpages_backend/internals/features/landing_pages/formfields"
)

const (
	OpAddField     = "add_field"
	OpRemoveField  = "remove_field"
	OpUpdateField  = "update_field"
	OpAddOption    = "add_option"
	OpRemoveOption = "remove_option"
	OpMoveField    = "move_field"
)

// FieldOp is one editor action against the draft field list.
type FieldOp struct {
	Op      string                 `json:"op" validate:"required,oneof=add_field remove_field update_field add_option remove_option move_field"`
	FieldID string                 `json:"field_id"`
	Type    formfields.FieldType   `json:"type"`
	Patch   *formfields.FieldPatch `json:"patch"`
	Index   *int                   `json:"index"`
}

// ApplyFieldOpsRequest replays ops over fields and returns the result
// without saving anything.
type ApplyFieldOpsRequest struct {
	Fields formfields.Fields `json:"fields"`
	Ops    []FieldOp         `json:"ops" validate:"max=200,dive"`
}

func (r *ApplyFieldOpsRequest) Normalize() {
	for i := range r.Ops {
		r.Ops[i].Op = strings.ToLower(strings.TrimSpace(r.Ops[i].Op))
		r.Ops[i].FieldID = strings.TrimSpace(r.Ops[i].FieldID)
	}
}

func (r *ApplyFieldOpsRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	for i, op := range r.Ops {
		if op.Op != OpAddField && op.FieldID == "" {
			return fmt.Errorf("ops[%d]: field_id is required for %s", i, op.Op)
		}
		if op.Op == OpUpdateField && op.Patch == nil {
			return fmt.Errorf("ops[%d]: patch is required for %s", i, op.Op)
		}
		if (op.Op == OpRemoveOption || op.Op == OpMoveField) && op.Index == nil {
			return fmt.Errorf("ops[%d]: index is required for %s", i, op.Op)
		}
	}
	return nil
}

// Apply runs the ops on a draft. It stops at the first failing op; the
// error says which one.
func (r *ApplyFieldOpsRequest) Apply() (*formfields.Draft, error) {
	d := formfields.NewDraft(r.Fields)
	for i, op := range r.Ops {
		var err error
		switch op.Op {
		case OpAddField:
			_, err = d.AddField(op.Type)
		case OpRemoveField:
			err = d.RemoveField(op.FieldID)
		case OpUpdateField:
			err = d.UpdateField(op.FieldID, *op.Patch)
		case OpAddOption:
			_, err = d.AddOption(op.FieldID)
		case OpRemoveOption:
			err = d.RemoveOption(op.FieldID, *op.Index)
		case OpMoveField:
			err = d.MoveField(op.FieldID, *op.Index)
		default:
			err = errors.New("unknown op")
		}
		if err != nil {
			return nil, fmt.Errorf("ops[%d] %s: %w", i, op.Op, err)
		}
	}
	return d, nil
}

type ApplyFieldOpsResponse struct {
	Fields      formfields.Fields `json:"fields"`
	Valid       bool              `json:"valid"`
	Error       string            `json:"error,omitempty"`
	PreviewHTML string            `json:"preview_html"`
}
