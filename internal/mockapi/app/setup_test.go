package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flogin/prodadmin/internal/mockapi/config"
	"github.com/flogin/prodadmin/internal/mockapi/service"
	pkgconfig "github.com/flogin/prodadmin/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Auth: pkgconfig.AuthConfig{
			Secret:   "e2e-test-secret-0123456789",
			TokenTTL: time.Hour,
		},
	}
	deps, err := SetupDependencies(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	server := httptest.NewServer(SetupHttpHandler(deps))
	t.Cleanup(server.Close)
	return server
}

func login(t *testing.T, server *httptest.Server) string {
	t.Helper()
	body := bytes.NewBufferString(`{"username":"admin123","password":"admin123"}`)
	resp, err := http.Post(server.URL+"/auth/login", "application/json", body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var parsed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func Test_Login(t *testing.T) {
	server := newTestServer(t)

	testCases := []struct {
		name         string
		body         string
		expectStatus int
	}{
		{
			name:         "Success",
			body:         `{"username":"admin123","password":"admin123"}`,
			expectStatus: http.StatusOK,
		},
		{
			name:         "Error - wrong password",
			body:         `{"username":"admin123","password":"nope123"}`,
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "Error - unknown user",
			body:         `{"username":"ghost","password":"admin123"}`,
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "Error - malformed body",
			body:         `{`,
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			resp, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewBufferString(tc.body))
			// then
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tc.expectStatus, resp.StatusCode)
		})
	}
}

func Test_Profile(t *testing.T) {
	// given
	server := newTestServer(t)
	token := login(t, server)
	// when
	resp := doJSON(t, http.MethodGet, server.URL+"/auth/profile", token, nil)
	// then
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile struct {
		FullName string `json:"fullName"`
		Username string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "admin123", profile.Username)
	assert.Equal(t, "Store Administrator", profile.FullName)
}

func Test_ProtectedRoutesRejectMissingToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/auth/profile", "/categories", "/products"} {
		t.Run(path, func(t *testing.T) {
			// when
			resp := doJSON(t, http.MethodGet, server.URL+path, "", nil)
			// then
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func Test_Categories(t *testing.T) {
	// given
	server := newTestServer(t)
	token := login(t, server)
	// when
	resp := doJSON(t, http.MethodGet, server.URL+"/categories", token, nil)
	// then: the seeded set comes back with stable ids
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []service.CategoryDto
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	require.Len(t, categories, len(seedCategories))
	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, int64(1), categories[0].ID)
}

func Test_ProductLifecycle(t *testing.T) {
	// given
	server := newTestServer(t)
	token := login(t, server)

	// when: create
	createResp := doJSON(t, http.MethodPost, server.URL+"/products", token, map[string]any{
		"productName": "Red Mug",
		"price":       9.99,
		"quantity":    3,
		"category_id": 1,
	})
	// then
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created service.ProductDto
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	assert.Equal(t, "Red Mug", created.ProductName)
	assert.Equal(t, "Electronics", created.Category.Name)

	// when: list
	listResp := doJSON(t, http.MethodGet, server.URL+"/products", token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list []service.ProductDto
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)

	// when: update
	productURL := fmt.Sprintf("%s/products/%d", server.URL, created.ID)
	updateResp := doJSON(t, http.MethodPut, productURL, token, map[string]any{
		"productName": "Blue Mug",
		"price":       12.50,
		"quantity":    1,
		"category_id": 2,
	})
	require.Equal(t, http.StatusOK, updateResp.StatusCode)
	var updated service.ProductDto
	require.NoError(t, json.NewDecoder(updateResp.Body).Decode(&updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Blue Mug", updated.ProductName)
	assert.Equal(t, "Books", updated.Category.Name)

	// when: delete
	deleteResp := doJSON(t, http.MethodDelete, productURL, token, nil)
	assert.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	// then: a second delete reports not found
	again := doJSON(t, http.MethodDelete, productURL, token, nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func Test_CreateProduct_Validation(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	testCases := []struct {
		name         string
		body         map[string]any
		expectField  string
		expectStatus int
	}{
		{
			name:         "Error - name too short",
			body:         map[string]any{"productName": "ab", "price": 9.99, "category_id": 1},
			expectField:  "ProductName",
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "Error - price missing",
			body:         map[string]any{"productName": "Red Mug", "category_id": 1},
			expectField:  "Price",
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "Error - category missing",
			body:         map[string]any{"productName": "Red Mug", "price": 9.99},
			expectField:  "CategoryID",
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "Error - unknown category id",
			body:         map[string]any{"productName": "Red Mug", "price": 9.99, "category_id": 99},
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			resp := doJSON(t, http.MethodPost, server.URL+"/products", token, tc.body)
			// then
			require.Equal(t, tc.expectStatus, resp.StatusCode)
			if tc.expectField == "" {
				return
			}
			var parsed struct {
				ValidationErrors map[string]string `json:"validation_errors"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
			assert.Contains(t, parsed.ValidationErrors, tc.expectField)
		})
	}
}

func Test_UpdateProduct_InvalidID(t *testing.T) {
	// given
	server := newTestServer(t)
	token := login(t, server)
	// when
	resp := doJSON(t, http.MethodPut, server.URL+"/products/abc", token, map[string]any{
		"productName": "Red Mug",
		"price":       9.99,
		"category_id": 1,
	})
	// then
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_HealthCheck(t *testing.T) {
	// given
	server := newTestServer(t)
	// when: no token required
	resp, err := http.Get(server.URL + "/healthz")
	// then
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
