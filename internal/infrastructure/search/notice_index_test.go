package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-noticeboard/pkg/events"
)

// fakeES answers like an Elasticsearch node, recording the last request.
func fakeES(t *testing.T, status int, body string) (*NoticeIndex, *http.Request, *string) {
	t.Helper()
	var last http.Request
	var lastBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		last = *r
		lastBody = string(b)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewNoticeIndex(es, "notices", nil), &last, &lastBody
}

func TestSearch_ReturnsSources(t *testing.T) {
	idx, last, body := fakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"n1","_source":{"id":"n1","text":"Holiday notice"}}]}}`)

	hits, err := idx.Search(context.Background(), "holiday", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Holiday notice", hits[0]["text"])

	assert.True(t, strings.HasPrefix(last.URL.Path, "/notices/_search"))
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(*body), &q))
	assert.Equal(t, float64(5), q["size"])
}

func TestSearch_ErrorStatus(t *testing.T) {
	idx, _, _ := fakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	_, err := idx.Search(context.Background(), "x", 5)
	assert.Error(t, err)
}

func TestIndexNotice(t *testing.T) {
	idx, last, body := fakeES(t, http.StatusCreated, `{"result":"created"}`)

	err := idx.IndexNotice(context.Background(), events.NoticeCreated{
		Type: events.NoticeCreatedType, NoticeID: "n1", Username: "alice", Text: "hello", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "/notices/_doc/n1", last.URL.Path)
	assert.Contains(t, *body, `"text":"hello"`)
}

func TestIndexNotice_ErrorStatus(t *testing.T) {
	idx, _, _ := fakeES(t, http.StatusBadRequest, `{"error":"bad"}`)
	err := idx.IndexNotice(context.Background(), events.NoticeCreated{NoticeID: "n1"})
	assert.Error(t, err)
}

func TestEnsureIndex(t *testing.T) {
	tests := []struct {
		name       string
		existsCode int
		wantCreate bool
		wantErr    bool
	}{
		{"already exists", http.StatusOK, false, false},
		{"missing is created", http.StatusNotFound, true, false},
		{"cluster error", http.StatusUnauthorized, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Elastic-Product", "Elasticsearch")
				switch r.Method {
				case http.MethodHead:
					w.WriteHeader(tt.existsCode)
				case http.MethodPut:
					created = true
					b, _ := io.ReadAll(r.Body)
					assert.Contains(t, string(b), `"created_at"`)
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(`{"acknowledged":true}`))
				default:
					w.WriteHeader(http.StatusMethodNotAllowed)
				}
			}))
			defer srv.Close()

			es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
			require.NoError(t, err)

			err = NewNoticeIndex(es, "notices", nil).EnsureIndex(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCreate, created)
		})
	}
}
