package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/autotrade/internal/config"
	"github.com/mamadbah2/autotrade/pkg/clients/whatsapp"
)

func TestSendText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := whatsapp.NewClient(config.WhatsAppConfig{
		AccessToken: "token", PhoneNumberID: "123", BaseURL: srv.URL + "/", APIVersion: "v20.0",
	})

	id, err := client.SendText(context.Background(), "2010000000", "Sales: 600.00")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "2010000000", got["to"])
	assert.Equal(t, "Sales: 600.00", got["text"].(map[string]any)["body"])
}

func TestSendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
	}))
	defer srv.Close()

	client := whatsapp.NewClient(config.WhatsAppConfig{AccessToken: "bad", PhoneNumberID: "123", BaseURL: srv.URL, APIVersion: "v20.0"})

	_, err := client.SendText(context.Background(), "2010000000", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=190")
}
