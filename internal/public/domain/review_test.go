package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestAuthorVariants(t *testing.T) {
	user := AuthenticatedAuthor(" u-42 ")
	if id, ok := user.UserID(); !ok || id != "u-42" {
		t.Fatalf("UserID = %q, %v", id, ok)
	}
	if _, ok := user.Fingerprint(); ok {
		t.Fatalf("authenticated author must not expose a fingerprint")
	}

	anon := AnonymousAuthor("abc123")
	if hash, ok := anon.Fingerprint(); !ok || hash != "abc123" {
		t.Fatalf("Fingerprint = %q, %v", hash, ok)
	}
	if _, ok := anon.UserID(); ok || anon.IsAuthenticated() {
		t.Fatalf("anonymous author must not expose a user id")
	}

	if (Author{}).Valid() || AuthenticatedAuthor("  ").Valid() {
		t.Fatalf("empty authors must be invalid")
	}
}

func TestReviewPatchValidate(t *testing.T) {
	rating := func(v int) *int { return &v }
	text := func(v string) *string { return &v }

	cases := []struct {
		name  string
		patch ReviewPatch
		ok    bool
	}{
		{"empty", ReviewPatch{}, false},
		{"rating only", ReviewPatch{Rating: rating(3)}, true},
		{"rating out of range", ReviewPatch{Rating: rating(9)}, false},
		{"text only", ReviewPatch{Text: text("  gut  ")}, true},
		{"text too long", ReviewPatch{Text: text(strings.Repeat("a", MaxReviewTextRunes+1))}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.patch
			err := p.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidReview) {
				t.Fatalf("err = %v, want ErrInvalidReview", err)
			}
			if tc.ok && p.Text != nil && *p.Text != strings.TrimSpace(*p.Text) {
				t.Fatalf("text not trimmed: %q", *p.Text)
			}
		})
	}
}

func TestAverageRating(t *testing.T) {
	if AverageRating(nil) != 0 {
		t.Fatalf("empty average must be 0")
	}
	if got := AverageRating([]int{5, 4, 4}); got < 4.333 || got > 4.334 {
		t.Fatalf("AverageRating = %v", got)
	}
}
