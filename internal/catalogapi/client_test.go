package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_SendsRequestAndDecodesPage(t *testing.T) {
	var gotAuth, gotVersion string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/catalog/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Square-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"objects": [{"type": "ITEM", "id": "item-1", "item_data": {"name": "Flat White"}}],
			"related_objects": [{"type": "CATEGORY", "id": "cat-1", "category_data": {"name": "Coffee"}}],
			"cursor": "next-page"
		}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	result, err := client.Search(context.Background(), []string{"ITEM", "CATEGORY"}, "", true)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, defaultAPIVersion, gotVersion)
	assert.Equal(t, []any{"ITEM", "CATEGORY"}, gotBody["object_types"])
	assert.Equal(t, true, gotBody["include_related_objects"])
	assert.NotContains(t, gotBody, "cursor")

	require.Len(t, result.Objects, 1)
	assert.Equal(t, "item-1", result.Objects[0].ID)
	require.NotNil(t, result.Objects[0].ItemData)
	assert.Equal(t, "Flat White", result.Objects[0].ItemData.Name)
	require.Len(t, result.RelatedObjects, 1)
	assert.Equal(t, "Coffee", result.RelatedObjects[0].CategoryData.Name)
	assert.Equal(t, "next-page", result.Cursor)
}

func TestSearch_SendsCursorOnFollowupPages(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"objects": []}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), []string{"ITEM"}, "page-2", false)
	require.NoError(t, err)
	assert.Equal(t, "page-2", gotBody["cursor"])
}

func TestList_SendsQueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/catalog/list", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"objects": [{"type": "IMAGE", "id": "img-1", "image_data": {"url": "https://cdn.example.com/a.jpg"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	result, err := client.List(context.Background(), "IMAGE", "page-3")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "types=IMAGE")
	assert.Contains(t, gotQuery, "cursor=page-3")
	require.Len(t, result.Objects, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", result.Objects[0].ImageData.URL)
	assert.Empty(t, result.Cursor)
}

func TestSearch_Non2xxReturnsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors": [{"code": "UNAUTHORIZED"}]}`))
	}))
	defer server.Close()

	client := NewClient("bad-token", WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), []string{"ITEM"}, "", true)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUpstream)
	var upstreamErr *UpstreamRequestError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Error(), "status=401")
	assert.Contains(t, upstreamErr.Error(), "UNAUTHORIZED")
}

func TestSearch_MalformedBodyReturnsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), []string{"ITEM"}, "", true)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUnconfiguredClientFailsFast(t *testing.T) {
	client := NewClient("")
	assert.False(t, client.Configured())

	_, err := client.Search(context.Background(), []string{"ITEM"}, "", true)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.List(context.Background(), "IMAGE", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUpstreamRequestError_PreviewTruncatesLongBodies(t *testing.T) {
	err := &UpstreamRequestError{
		Method:     http.MethodPost,
		URL:        "https://example.com/v2/catalog/search",
		StatusCode: 500,
		Body:       strings.Repeat("x", maxErrorBodyPreview+100),
	}
	assert.Contains(t, err.Error(), "...")
	assert.True(t, errors.Is(err, ErrUpstream))
}
