package formfields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	t.Run("TrimsAndNormalisesType", func(t *testing.T) {
		f, err := NewField(Field{ID: " name ", Label: " Name ", Type: " TEXT ", Placeholder: " Jane "})
		require.NoError(t, err)
		want := Field{ID: "name", Label: "Name", Type: TypeText, Placeholder: "Jane"}
		if diff := cmp.Diff(want, f); diff != "" {
			t.Errorf("NewField mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NonChoiceTypesDropOptions", func(t *testing.T) {
		for _, typ := range []FieldType{TypeText, TypeEmail, TypeTel, TypeTextarea, TypeDate} {
			f, err := NewField(Field{ID: "x", Label: "X", Type: typ, Options: []Option{{Value: "a", Label: "A"}}})
			require.NoError(t, err, typ)
			assert.Nil(t, f.Options, typ)
		}
	})

	t.Run("ChoiceTypesNeedOptions", func(t *testing.T) {
		for _, typ := range []FieldType{TypeSelect, TypeCheckbox, TypeRadio} {
			_, err := NewField(Field{ID: "x", Label: "X", Type: typ})
			assert.ErrorIs(t, err, ErrOptionsRequired, typ)
		}
	})

	t.Run("OptionLabelDefaultsToValue", func(t *testing.T) {
		f, err := NewField(Field{ID: "size", Label: "Size", Type: TypeSelect, Options: []Option{{Value: " m "}}})
		require.NoError(t, err)
		assert.Equal(t, []Option{{Value: "m", Label: "m"}}, f.Options)
	})

	t.Run("RejectsBlankAndDuplicateOptionValues", func(t *testing.T) {
		_, err := NewField(Field{ID: "s", Label: "S", Type: TypeRadio, Options: []Option{{Value: " "}}})
		assert.ErrorIs(t, err, ErrOptionValueEmpty)

		_, err = NewField(Field{ID: "s", Label: "S", Type: TypeRadio, Options: []Option{{Value: "a"}, {Value: "a"}}})
		assert.ErrorIs(t, err, ErrDuplicateOption)
		var se *SchemaError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 1, se.Option)
	})

	t.Run("ChoiceGroupsDropPlaceholder", func(t *testing.T) {
		f, err := NewField(Field{ID: "c", Label: "C", Type: TypeCheckbox, Placeholder: "pick", Options: []Option{{Value: "a"}}})
		require.NoError(t, err)
		assert.Empty(t, f.Placeholder)

		f, err = NewField(Field{ID: "s", Label: "S", Type: TypeSelect, Placeholder: "pick", Options: []Option{{Value: "a"}}})
		require.NoError(t, err)
		assert.Equal(t, "pick", f.Placeholder)
	})

	t.Run("RequiresIDLabelAndKnownType", func(t *testing.T) {
		_, err := NewField(Field{Label: "X", Type: TypeText})
		assert.ErrorIs(t, err, ErrFieldIDRequired)
		_, err = NewField(Field{ID: "x", Type: TypeText})
		assert.ErrorIs(t, err, ErrFieldLabelRequired)
		_, err = NewField(Field{ID: "x", Label: "X", Type: "color"})
		assert.ErrorIs(t, err, ErrUnknownFieldType)
	})
}

func TestNewFields(t *testing.T) {
	t.Run("RejectsDuplicateIDs", func(t *testing.T) {
		_, err := NewFields([]Field{
			{ID: "name", Label: "Name", Type: TypeText},
			{ID: "name", Label: "Other", Type: TypeEmail},
		})
		require.ErrorIs(t, err, ErrDuplicateFieldID)
		var se *SchemaError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 1, se.Index)
		assert.Equal(t, `field "name": duplicate field id`, err.Error())
	})

	t.Run("ReportsIndexOfBadField", func(t *testing.T) {
		_, err := NewFields([]Field{
			{ID: "a", Label: "A", Type: TypeText},
			{ID: "b", Label: "B", Type: TypeSelect},
		})
		var se *SchemaError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 1, se.Index)
		assert.Equal(t, "b", se.FieldID)
	})

	t.Run("EmptyListIsValid", func(t *testing.T) {
		fs, err := NewFields(nil)
		require.NoError(t, err)
		assert.Empty(t, fs)
	})
}

func TestFieldsClone(t *testing.T) {
	orig := Fields{{ID: "pick", Label: "Pick", Type: TypeRadio, Options: []Option{{Value: "a", Label: "A"}}}}
	cp := orig.Clone()
	cp[0].Label = "Changed"
	cp[0].Options[0].Label = "Changed"

	assert.Equal(t, "Pick", orig[0].Label)
	assert.Equal(t, "A", orig[0].Options[0].Label)
	assert.Nil(t, Fields(nil).Clone())
}

func TestFieldTypeTraits(t *testing.T) {
	assert.True(t, TypeCheckbox.MultiValue())
	assert.False(t, TypeRadio.MultiValue())
	assert.True(t, TypeSelect.HasOptions())
	assert.False(t, TypeDate.HasOptions())
	assert.False(t, FieldType("nope").Valid())
	for _, typ := range AllTypes {
		assert.True(t, typ.Valid(), typ)
	}
}
