// internal/directory/elasticsearch_test.go
package directory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeTransport serves canned Elasticsearch responses and records the
// request bodies it saw.
type fakeTransport struct {
	status int
	body   string
	err    error

	calls  int
	bodies []string
	paths  []string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	f.paths = append(f.paths, req.URL.Path)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(data))
	}
	if f.err != nil {
		return nil, f.err
	}

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")

	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestES(t *testing.T, transport *fakeTransport, cache *redis.Client) *ES {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: transport,
	})
	require.NoError(t, err)
	return NewES(client, cache, "mentors", 10*time.Minute, logger.NewNoOpLogger())
}

func searchEnvelope(mentors ...models.Mentor) string {
	type hit struct {
		ID     string        `json:"_id"`
		Source models.Mentor `json:"_source"`
	}
	hits := make([]hit, 0, len(mentors))
	for _, m := range mentors {
		hits = append(hits, hit{ID: m.ID, Source: m})
	}
	envelope := map[string]interface{}{
		"hits": map[string]interface{}{"hits": hits},
	}
	data, _ := json.Marshal(envelope)
	return string(data)
}

// ==========================
// Tag Overlap Query Tests
// ==========================

func TestES_FindByTagOverlap_QueryShape(t *testing.T) {
	transport := &fakeTransport{body: searchEnvelope()}
	es := newTestES(t, transport, nil)

	_, err := es.FindByTagOverlap(context.Background(), []string{"Oncology", "Female"})
	require.NoError(t, err)
	require.Len(t, transport.bodies, 1)

	var query struct {
		Query struct {
			Bool struct {
				Should []struct {
					Wildcard map[string]struct {
						Value string `json:"value"`
					} `json:"wildcard"`
				} `json:"should"`
				MinimumShouldMatch int `json:"minimum_should_match"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &query))

	assert.Equal(t, 1, query.Query.Bool.MinimumShouldMatch)
	require.Len(t, query.Query.Bool.Should, 2)
	assert.Equal(t, "*oncology*", query.Query.Bool.Should[0].Wildcard["tags"].Value)
	assert.Equal(t, "*female*", query.Query.Bool.Should[1].Wildcard["tags"].Value)
}

func TestES_FindByTagOverlap_ParsesHits(t *testing.T) {
	transport := &fakeTransport{body: searchEnvelope(
		models.Mentor{ID: "m1", Name: "Dana Whitfield", Tags: []string{"oncology"}},
		models.Mentor{ID: "m2", Name: "Sam Ortiz", Tags: []string{"cardiology"}},
	)}
	es := newTestES(t, transport, nil)

	mentors, err := es.FindByTagOverlap(context.Background(), []string{"oncology"})

	assert.NoError(t, err)
	require.Len(t, mentors, 2)
	assert.Equal(t, "m1", mentors[0].ID)
	assert.Equal(t, "Dana Whitfield", mentors[0].Name)
	assert.Equal(t, []string{"oncology"}, mentors[0].Tags)
}

func TestES_FindByTagOverlap_EmptyTermsSkipsSearch(t *testing.T) {
	transport := &fakeTransport{body: searchEnvelope()}
	es := newTestES(t, transport, nil)

	mentors, err := es.FindByTagOverlap(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, mentors)
	assert.Zero(t, transport.calls)
}

func TestES_FindByTagOverlap_ErrorStatus(t *testing.T) {
	transport := &fakeTransport{status: http.StatusInternalServerError, body: `{"error":"boom"}`}
	es := newTestES(t, transport, nil)

	mentors, err := es.FindByTagOverlap(context.Background(), []string{"oncology"})

	assert.Nil(t, mentors)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

// ==========================
// Snapshot Fetch & Cache Tests
// ==========================

func TestES_FetchByID_CacheHitBypassesSearch(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cached, _ := json.Marshal(models.Mentor{ID: "m1", Name: "Dana Whitfield"})
	require.NoError(t, mr.Set(snapshotKeyPrefix+"m1", string(cached)))

	transport := &fakeTransport{body: searchEnvelope()}
	es := newTestES(t, transport, cache)

	mentors, err := es.FetchByID(context.Background(), []string{"m1"})

	assert.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Dana Whitfield", mentors[0].Name)
	assert.Zero(t, transport.calls, "a full cache hit must not touch the index")
}

func TestES_FetchByID_MissFallsBackAndFillsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	transport := &fakeTransport{body: searchEnvelope(
		models.Mentor{ID: "m1", Name: "Dana Whitfield"},
	)}
	es := newTestES(t, transport, cache)

	mentors, err := es.FetchByID(context.Background(), []string{"m1"})

	assert.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "m1", mentors[0].ID)
	assert.Equal(t, 1, transport.calls)

	assert.True(t, mr.Exists(snapshotKeyPrefix+"m1"), "fetched snapshot is cached")
}

func TestES_FetchByID_CacheWriteUsesConfiguredTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mentor := models.Mentor{ID: "m1", Name: "Dana Whitfield"}
	data, _ := json.Marshal(mentor)

	mock.ExpectGet(snapshotKeyPrefix + "m1").RedisNil()
	mock.ExpectSet(snapshotKeyPrefix+"m1", data, 10*time.Minute).SetVal("OK")

	transport := &fakeTransport{body: searchEnvelope(mentor)}
	es := newTestES(t, transport, db)

	mentors, err := es.FetchByID(context.Background(), []string{"m1"})

	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestES_FetchByID_EmptyIDs(t *testing.T) {
	transport := &fakeTransport{body: searchEnvelope()}
	es := newTestES(t, transport, nil)

	mentors, err := es.FetchByID(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, mentors)
	assert.Zero(t, transport.calls)
}
