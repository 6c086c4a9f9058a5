// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvu/gamedex/internal/platform/apperr"
	"github.com/minhngvu/gamedex/internal/platform/validate"
)

/*
TestValidator_Required tests the presence rule, including whitespace-only
values.
*/
func TestValidator_Required(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid value", value: "Elden Ring", wantErr: false},
		{name: "empty string", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required("title", tc.value).Err()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_FloatRange tests inclusive bounds on fractional values.
*/
func TestValidator_FloatRange(t *testing.T) {
	cases := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{name: "lower bound", value: 0, wantErr: false},
		{name: "upper bound", value: 5, wantErr: false},
		{name: "inside", value: 4.43, wantErr: false},
		{name: "below", value: -0.01, wantErr: true},
		{name: "above", value: 5.01, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.FloatRange("review_rating", tc.value, 0, 5).Err()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_URL tests the absolute-URL rule used for cover images.
*/
func TestValidator_URL(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "https url", value: "https://media.rawg.io/elden.jpg", wantErr: false},
		{name: "http url", value: "http://example.com/a.png", wantErr: false},
		{name: "relative path", value: "covers/elden.jpg", wantErr: true},
		{name: "missing host", value: "https://", wantErr: true},
		{name: "other scheme", value: "ftp://example.com/a.png", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.URL("cover_image", tc.value).Err()

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_OneOf tests enum membership.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	err := v.OneOf("game_mode", "multiplayer", "single-player", "multiplayer", "both").Err()
	assert.NoError(t, err)

	v = &validate.Validator{}
	err = v.OneOf("game_mode", "co-op", "single-player", "multiplayer", "both").Err()
	assert.Error(t, err)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "Hades").
		MaxLen("title", "Hades", 300).
		Required("developer", "Supergiant Games").
		FloatRange("review_rating", 4.8, 0, 5).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").                    // Fails
		FloatRange("review_rating", 7.2, 0, 5).   // Fails
		URL("cover_image", "covers/hades.png").   // Fails
		Custom("playtime_estimate", false, "ok"). // Passes
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 3)
}

/*
TestRequiredError tests the single-field shortcut constructor.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("body", "At least one updatable field is required")

	require.NotNil(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "body", err.Details[0].Field)
}
