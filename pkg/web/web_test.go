package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func Test_RespondJSON(t *testing.T) {
	// given
	rec := httptest.NewRecorder()
	// when
	RespondJSON(rec, discardLogger(), http.StatusCreated, map[string]string{"name": "Red Mug"})
	// then
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Red Mug"}`, rec.Body.String())
}

func Test_RespondJSON_NilPayload(t *testing.T) {
	// given
	rec := httptest.NewRecorder()
	// when
	RespondJSON(rec, discardLogger(), http.StatusNoContent, nil)
	// then
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func Test_RespondError(t *testing.T) {
	// given
	rec := httptest.NewRecorder()
	// when
	RespondError(rec, discardLogger(), http.StatusNotFound, "Product with ID 3 not found")
	// then
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product with ID 3 not found"}`, rec.Body.String())
}

func Test_ParseID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		expected int64
		ok       bool
	}{
		{name: "Success", id: "42", expected: 42, ok: true},
		{name: "Error - not a number", id: "abc", ok: false},
		{name: "Error - zero", id: "0", ok: false},
		{name: "Error - negative", id: "-3", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/products/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rec := httptest.NewRecorder()
			// when
			id, ok := ParseID(rec, req, discardLogger())
			// then
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, id)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func Test_RequestIDInjector(t *testing.T) {
	// given
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetRequestID(r.Context())
	})
	// when
	RequestIDInjector(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	// then
	assert.NotEmpty(t, gotID)
}

func Test_Recoverer(t *testing.T) {
	// given
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	// when
	require.NotPanics(t, func() {
		Recoverer(discardLogger())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	// then
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func Test_WithRequestID(t *testing.T) {
	ctx := WithRequestID(t.Context(), "req-1")

	id, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)

	_, ok = GetRequestID(t.Context())
	assert.False(t, ok)
}
