package helper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Summer Beach Cleanup 2025!": "summer-beach-cleanup-2025",
		"  Café Crème  ":             "cafe-creme",
		"Beach---Day":                "beach-day",
		"--Hello, World--":           "hello-world",
		"!!! ???":                    "",
		"":                           "",
		"already-a-slug":             "already-a-slug",
	}
	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, Slugify(got), "idempotent for %q", in)
		if got != "" {
			assert.True(t, IsValidSlug(got), got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	for _, s := range []string{"beach-day", "a", "event-2025", "x1-y2"} {
		assert.True(t, IsValidSlug(s), s)
	}
	for _, s := range []string{"", "Beach-Day", "beach day", "-beach", "beach-", "beach--day", "beach_day"} {
		assert.False(t, IsValidSlug(s), s)
	}
}

func TestGenerateUniqueSlug(t *testing.T) {
	takenSet := func(used ...string) func(string) (bool, error) {
		m := map[string]bool{}
		for _, u := range used {
			m[u] = true
		}
		return func(s string) (bool, error) { return m[s], nil }
	}

	t.Run("FreeBase", func(t *testing.T) {
		got, err := GenerateUniqueSlug(SlugOptions{Taken: takenSet()}, "Beach Day")
		require.NoError(t, err)
		assert.Equal(t, "beach-day", got)
	})

	t.Run("Suffixes", func(t *testing.T) {
		got, err := GenerateUniqueSlug(SlugOptions{Taken: takenSet("beach-day", "beach-day-2")}, "Beach Day")
		require.NoError(t, err)
		assert.Equal(t, "beach-day-3", got)
	})

	t.Run("DefaultBase", func(t *testing.T) {
		got, err := GenerateUniqueSlug(SlugOptions{Taken: takenSet("landing-page"), DefaultBase: "landing-page"}, "???")
		require.NoError(t, err)
		assert.Equal(t, "landing-page-2", got)
	})

	t.Run("MaxLenKeepsSuffix", func(t *testing.T) {
		base := strings.Repeat("a", 20)
		got, err := GenerateUniqueSlug(SlugOptions{Taken: takenSet(base[:10]), MaxLen: 10}, base)
		require.NoError(t, err)
		assert.Equal(t, "aaaaaaaa-2", got)
		assert.LessOrEqual(t, len(got), 10)
	})

	t.Run("CheckerError", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := GenerateUniqueSlug(SlugOptions{Taken: func(string) (bool, error) { return false, boom }}, "x")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("NoChecker", func(t *testing.T) {
		_, err := GenerateUniqueSlug(SlugOptions{}, "x")
		assert.Error(t, err)
	})
}
