package slug

import (
	"errors"
	"strconv"
)

// MaxAttempts bounds the numeric suffixes MakeUnique tries before giving up.
const MaxAttempts = 1000

// ErrCollisionExhausted is returned when no numeric suffix within MaxAttempts is free.
var ErrCollisionExhausted = errors.New("slug: collision not resolved within attempt bound")

// Set is a collection of slugs already taken in one scope.
type Set map[string]struct{}

// NewSet returns a Set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add marks slug as taken.
func (s Set) Add(slug string) { s[slug] = struct{}{} }

// Has reports whether slug is taken.
func (s Set) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// Len returns the number of taken slugs.
func (s Set) Len() int { return len(s) }

// MakeUnique returns a slug derived from base that is absent from existing.
//
// With a non-empty suffix, "base-suffix" is tried first and becomes the base for
// numbering when it is taken. Without one, base itself is tried first. Numbering
// appends -2, -3, ... to the chosen base. MakeUnique does not modify existing.
func MakeUnique(base string, existing Set, suffix string) (string, error) {
	chosen := base
	if suffix != "" {
		chosen = base + "-" + suffix
	}
	if !existing.Has(chosen) {
		return chosen, nil
	}

	for n := 2; n < MaxAttempts+2; n++ {
		candidate := chosen + "-" + strconv.Itoa(n)
		if !existing.Has(candidate) {
			return candidate, nil
		}
	}

	return "", ErrCollisionExhausted
}

// Assigner hands out unique slugs within a single scope and remembers what it
// assigned, so a batch of names can be slugged without colliding with itself.
type Assigner struct {
	taken Set
}

// NewAssigner creates an Assigner whose scope already contains existing.
func NewAssigner(existing ...string) *Assigner {
	return &Assigner{taken: NewSet(existing...)}
}

// Assign slugs input. The plain slug is used when free; on collision the
// slugged suffix is tried, then numbering (see MakeUnique).
func (a *Assigner) Assign(input, suffix string) (string, error) {
	base := ToSlug(input)

	result := base
	if a.taken.Has(base) {
		var err error
		result, err = MakeUnique(base, a.taken, suffixSlug(suffix))
		if err != nil {
			return "", err
		}
	}

	a.taken.Add(result)
	return result, nil
}

// Taken reports whether slug is already used in the assigner's scope.
func (a *Assigner) Taken(slug string) bool {
	return a.taken.Has(slug)
}

func suffixSlug(suffix string) string {
	if suffix == "" {
		return ""
	}
	s := ToSlug(suffix)
	if s == Placeholder {
		return ""
	}
	return s
}
