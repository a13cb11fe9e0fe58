package helper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const DefaultSlugMaxLen = 160

var (
	reSlugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reSlugValid    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify lowercases s, folds diacritics (é → e), collapses every run of
// characters outside [a-z0-9] into one "-" and trims hyphens at both ends.
// The result is either empty or a valid slug, and Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	out := reSlugNonAlnum.ReplaceAllString(b.String(), "-")
	return strings.Trim(out, "-")
}

// IsValidSlug reports whether s is lowercase kebab-case.
func IsValidSlug(s string) bool {
	return reSlugValid.MatchString(s)
}

// cutToLen cuts s to at most n bytes and trims trailing "-".
func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

// SlugOptions controls GenerateUniqueSlug.
type SlugOptions struct {
	// Taken reports whether a candidate is already used in the target scope
	// (e.g. the same organization).
	Taken func(candidate string) (bool, error)

	// MaxLen includes the -2, -3 suffix. 0 means DefaultSlugMaxLen.
	MaxLen int

	// DefaultBase is used when base slugifies to "".
	DefaultBase string
}

// GenerateUniqueSlug tries the slugified base first and then base-2, base-3, ...
// until Taken reports a free candidate.
func GenerateUniqueSlug(opts SlugOptions, base string) (string, error) {
	if opts.Taken == nil {
		return "", errors.New("slug options: taken checker required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = Slugify(base)
	if base == "" {
		base = Slugify(opts.DefaultBase)
	}
	if base == "" {
		base = "x"
	}
	base = cutToLen(base, maxLen)

	taken, err := opts.Taken(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := base
		if len(candidate)+len(suf) > maxLen {
			cut := maxLen - len(suf)
			if cut < 1 {
				cut = 1
			}
			candidate = cutToLen(candidate, cut)
			if candidate == "" {
				candidate = "x"
			}
		}
		candidate += suf

		taken, err = opts.Taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
