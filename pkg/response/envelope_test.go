package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "itemstore-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriter_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	writer := NewWriter(zap.NewNop())

	writer.Success(rec, http.StatusCreated, map[string]string{"id": "123"}, "Item created successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Equal(t, "Item created successfully", env.Message)
	assert.Equal(t, map[string]interface{}{"id": "123"}, env.Body)
}

func TestWriter_Error_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	writer := NewWriter(zap.NewNop())

	writer.Error(rec, apperrors.NewNotFoundError("Item"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, "Item not found", env.Message)
	assert.Nil(t, env.Body)
}

func TestWriter_Error_UnclassifiedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writer := NewWriter(zap.NewNop())

	writer.Error(rec, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Internal server error", env.Message, "internal details never leak to the client")
	assert.Nil(t, env.Body)
}

func TestParseJSONBody_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Pen","bogus":1}`))

	var v struct {
		Name string `json:"name"`
	}
	err := ParseJSONBody(req, &v, 1<<20)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestParseJSONBody_EnforcesSizeLimit(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 64)
	body := `{"name":"` + string(big) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var v struct {
		Name string `json:"name"`
	}
	err := ParseJSONBody(req, &v, 16)

	assert.Error(t, err)
}

func TestParseJSONBody_RejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Pen"} {"name":"Pencil"}`))

	var v struct {
		Name string `json:"name"`
	}
	err := ParseJSONBody(req, &v, 1<<20)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected data after JSON body")
}

func TestParseJSONBody_Valid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Pen"}`))

	var v struct {
		Name string `json:"name"`
	}
	err := ParseJSONBody(req, &v, 1<<20)

	require.NoError(t, err)
	assert.Equal(t, "Pen", v.Name)
}
