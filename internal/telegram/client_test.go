package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestGetMe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getMe", r.URL.Path)
		w.Write([]byte(`{"ok":true,"result":{"id":7,"username":"nexus_files_bot"}}`))
	})

	me, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), me.ID)
	assert.Equal(t, "nexus_files_bot", me.Username)
}

func TestGetUpdatesParsesMediaMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.Form.Get("offset"))
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":42,"message":{
				"message_id":1,
				"from":{"id":100},
				"chat":{"id":100,"type":"private"},
				"document":{"file_id":"abc123","file_unique_id":"u1","file_name":"report.pdf"}
			}}
		]}`))
	})

	updates, err := client.GetUpdates(context.Background(), 42, 30)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Message)
	require.NotNil(t, updates[0].Message.Document)
	assert.Equal(t, "abc123", updates[0].Message.Document.FileID)
	assert.Equal(t, "report.pdf", updates[0].Message.Document.FileName)
}

func TestSendDocumentAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "abc123", r.Form.Get("document"))
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: wrong file identifier"}`))
	})

	err := client.SendDocument(context.Background(), 100, "abc123", "report.pdf")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "sendDocument", apiErr.Method)
}

func TestCascadeTransportsOrder(t *testing.T) {
	client := NewClient("test-token")

	var kinds []string
	for _, tr := range client.CascadeTransports() {
		kinds = append(kinds, tr.Kind())
	}
	assert.Equal(t, []string{"document", "photo", "video", "audio"}, kinds)
}
