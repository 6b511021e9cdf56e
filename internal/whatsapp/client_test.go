package whatsapp_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoy/ledger-notify/internal/whatsapp"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestClient_SendPostsToConfiguredEndpoint(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"PENDING"}`))
	}))
	defer server.Close()

	client, err := whatsapp.NewClient(server.URL, "secret-key", "main", quietLogger())
	require.NoError(t, err)

	err = client.Send(context.Background(), "5511999999999", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/main/message/sendText", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "5511999999999", gotBody["number"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestClient_SendSurfacesGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid apikey"}`))
	}))
	defer server.Close()

	client, err := whatsapp.NewClient(server.URL, "bad-key", "main", quietLogger())
	require.NoError(t, err)

	err = client.Send(context.Background(), "5511999999999", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid apikey")
}

func TestClient_RejectsIncompleteConfiguration(t *testing.T) {
	log := quietLogger()

	_, err := whatsapp.NewClient("", "key", "main", log)
	assert.Error(t, err)
	_, err = whatsapp.NewClient("https://gw.example.com", "", "main", log)
	assert.Error(t, err)
	_, err = whatsapp.NewClient("https://gw.example.com", "key", "", log)
	assert.Error(t, err)
}

func TestClient_CheckInstanceStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fetchInstances", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"instanceName": "other", "status": "close"},
			{"instanceName": "main", "status": "open"},
		})
	}))
	defer server.Close()

	client, err := whatsapp.NewClient(server.URL, "key", "main", quietLogger())
	require.NoError(t, err)
	assert.True(t, client.CheckInstanceStatus(context.Background()))
}

func TestClient_CheckInstanceStatusDisconnected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"instanceName": "main", "status": "close"},
		})
	}))
	defer server.Close()

	client, err := whatsapp.NewClient(server.URL, "key", "main", quietLogger())
	require.NoError(t, err)
	assert.False(t, client.CheckInstanceStatus(context.Background()))
}

func TestClient_CheckInstanceStatusUnreachableDoesNotBlock(t *testing.T) {
	client, err := whatsapp.NewClient("http://127.0.0.1:1", "key", "main", quietLogger())
	require.NoError(t, err)

	// advisory check: failure to verify must not block sends
	assert.True(t, client.CheckInstanceStatus(context.Background()))
}
