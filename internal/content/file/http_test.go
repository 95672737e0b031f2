// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/content/file"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	"github.com/acadex-platform/acadex/internal/platform/ctxutil"
	"github.com/acadex-platform/acadex/internal/platform/sec"
)

// countingReader records how many bytes the handler pulled off the wire.
type countingReader struct {
	reader io.Reader
	read   int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.read += int64(n)
	return n, err
}

func TestHandler_Upload(t *testing.T) {
	t.Run("oversized_body_is_rejected_without_reading_it_all", func(t *testing.T) {
		fx := newFixture(t)
		fx.files.curriculums["curr-1"] = true
		router := file.NewHandler(fx.service).StaffRoutes()

		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField(file.FieldCurriculumID, "curr-1"))
		part, err := form.CreateFormFile(file.FieldFile, "huge.pdf")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("a"), 20*1024*1024))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		total := int64(body.Len())
		counting := &countingReader{reader: body}

		request := httptest.NewRequest(http.MethodPost, "/", counting)
		request.Header.Set(constants.HeaderContentType, form.FormDataContentType())
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{
			UserID: "user-1",
			Role:   "doctor",
		}))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "File exceeds the maximum size of 10485760 bytes")

		// The body cap must abort the read; the 20 MiB payload never
		// crosses in full.
		bodyLimit := int64(constants.MaxDocumentBytes + constants.MultipartMemoryLimit)
		assert.LessOrEqual(t, counting.read, bodyLimit+1)
		assert.Less(t, counting.read, total)

		assert.Zero(t, fx.files.creates)
		assert.Empty(t, fx.storage.objects)
	})
}
