package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baro_site_server/internal/preview"
)

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) *OpenAIBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b, err := NewOpenAIBackend("test-key", srv.URL+"/v1")
	require.NoError(t, err)
	return b
}

func TestOpenAIGenerateStructuredJSON(t *testing.T) {
	var got map[string]any
	b := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"brandName\":\"BeanLoop\"}"}}]
		}`))
	})

	text, err := b.GenerateStructuredJSON(context.Background(), DefaultOpenAIContentModel, "describe coffee")
	require.NoError(t, err)
	assert.Equal(t, `{"brandName":"BeanLoop"}`, text)

	assert.Equal(t, "gpt-4o", got["model"])
	format, ok := got["response_format"].(map[string]any)
	require.True(t, ok, "response_format missing: %v", got)
	assert.Equal(t, "json_schema", format["type"])

	jsonSchema := format["json_schema"].(map[string]any)
	assert.Equal(t, "site_content", jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	schema := jsonSchema["schema"].(map[string]any)
	assert.ElementsMatch(t, []any{"brandName", "hero", "features", "about", "pricing", "contact"}, schema["required"])
	assert.Equal(t, false, schema["additionalProperties"])

	features := schema["properties"].(map[string]any)["features"].(map[string]any)
	icon := features["items"].(map[string]any)["properties"].(map[string]any)["icon"].(map[string]any)
	var want []any
	for _, name := range preview.IconNames() {
		want = append(want, name)
	}
	assert.Equal(t, "string", icon["type"])
	assert.Equal(t, want, icon["enum"])
}

func TestOpenAIGenerateStructuredJSONAPIError(t *testing.T) {
	b := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	})

	_, err := b.GenerateStructuredJSON(context.Background(), "gpt-4o", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestOpenAIGenerateImage(t *testing.T) {
	var got map[string]any
	payload := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nimage"))

	b := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created": 1, "data": [{"b64_json": "` + payload + `"}]}`))
	})

	img, err := b.GenerateImage(context.Background(), DefaultOpenAIImageModel, "hero prompt", "16:9")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nimage"), img.Data)

	assert.Equal(t, "dall-e-3", got["model"])
	assert.Equal(t, "1792x1024", got["size"])
	assert.Equal(t, "b64_json", got["response_format"])
}

func TestOpenAIGenerateImageWithoutPayload(t *testing.T) {
	b := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created": 1, "data": []}`))
	})

	img, err := b.GenerateImage(context.Background(), "dall-e-3", "p", "16:9")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestOpenAIImageSize(t *testing.T) {
	assert.Equal(t, "1792x1024", openAIImageSize("16:9"))
	assert.Equal(t, "1024x1792", openAIImageSize("9:16"))
	assert.Equal(t, "1024x1024", openAIImageSize("1:1"))
}
