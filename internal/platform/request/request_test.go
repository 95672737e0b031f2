// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package requestutil_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
)

// countingReader records how many bytes have been consumed from the
// wrapped reader.
type countingReader struct {
	reader io.Reader
	read   int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.read += int64(n)
	return n, err
}

func multipartBody(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	return body, form.FormDataContentType()
}

func TestParseMultipart(t *testing.T) {
	t.Run("oversized_body_is_aborted_at_the_cap", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "big.pdf", bytes.Repeat([]byte("a"), 20*1024*1024))
		total := int64(body.Len())
		counting := &countingReader{reader: body}

		request := httptest.NewRequest(http.MethodPost, "/", counting)
		request.Header.Set(constants.HeaderContentType, contentType)
		recorder := httptest.NewRecorder()

		err := requestutil.ParseMultipart(recorder, request, "file", constants.MaxDocumentBytes)
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		require.Len(t, appErr.Details, 1)
		assert.Equal(t, "file", appErr.Details[0].Field)
		assert.Equal(t, "File exceeds the maximum size of 10485760 bytes", appErr.Details[0].Message)

		// MaxBytesReader stops one byte past the limit. The rest of the
		// oversized body must never be consumed.
		bodyLimit := int64(constants.MaxDocumentBytes + constants.MultipartMemoryLimit)
		assert.LessOrEqual(t, counting.read, bodyLimit+1)
		assert.Less(t, counting.read, total)
	})

	t.Run("well_formed_body_parses", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "notes.pdf", []byte("lecture notes"))

		request := httptest.NewRequest(http.MethodPost, "/", body)
		request.Header.Set(constants.HeaderContentType, contentType)
		recorder := httptest.NewRecorder()

		err := requestutil.ParseMultipart(recorder, request, "file", constants.MaxDocumentBytes)
		require.NoError(t, err)

		file, header, err := request.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "notes.pdf", header.Filename)
		assert.Equal(t, int64(len("lecture notes")), header.Size)
	})
}
