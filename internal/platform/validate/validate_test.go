// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	"github.com/acadex-platform/acadex/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Acadex", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Range checks the inclusive integer bounds rule used for
rating scores and study year numbers.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"lower_bound", 1, true},
		{"upper_bound", 5, true},
		{"below", 0, false},
		{"above", 6, false},
		{"negative", -3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("score", tt.value, 1, 5)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_UUID checks the identifier format rule.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_lowercase", "0190d1a0-5b6c-7d8e-9f10-112233445566", true},
		{"valid_uppercase", "0190D1A0-5B6C-7D8E-9F10-112233445566", true},
		{"missing_hyphens", "0190d1a05b6c7d8e9f10112233445566", false},
		{"too_short", "0190d1a0-5b6c", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_FileSize checks the upload size rule: an empty part is
rejected as missing, and anything over the limit is rejected with the
limit in the message.
*/
func TestValidator_FileSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		message string
	}{
		{"within_limit", 1024, ""},
		{"exactly_at_limit", constants.MaxDocumentBytes, ""},
		{"empty_file", 0, "File is empty"},
		{"negative_size", -1, "File is empty"},
		{"over_limit", constants.MaxDocumentBytes + 1, "File exceeds the maximum size of 10485760 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.FileSize("file", tt.size, constants.MaxDocumentBytes)

			if tt.message == "" {
				assert.False(t, v.HasErrors())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, tt.message, ae.Details[0].Message)
		})
	}
}

/*
TestValidator_ContentType checks the MIME allow-list rule, including
charset suffix normalization.
*/
func TestValidator_ContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		isValid     bool
	}{
		{"allowed_pdf", "application/pdf", true},
		{"allowed_with_charset", "text/plain; charset=utf-8", true},
		{"allowed_mixed_case", "Application/PDF", true},
		{"disallowed_executable", "application/x-msdownload", false},
		{"disallowed_image", "image/png", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ContentType("file", tt.contentType, constants.DocumentContentTypes)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that multiple failed rules accumulate
into a single error with one detail per failure.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("name", "").
		Email("email", "nope").
		Range("score", 9, 1, 5)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, "name", ae.Details[0].Field)
	assert.Equal(t, "email", ae.Details[1].Field)
	assert.Equal(t, "score", ae.Details[2].Field)
}
