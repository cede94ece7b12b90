// internal/directory/elasticsearch.go
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/models"
)

const (
	// searchSize bounds the raw hit set returned by the overlap query;
	// the retriever re-ranks and truncates the pool afterwards.
	searchSize = 200

	snapshotKeyPrefix = "mentor:snapshot:"
)

var (
	ErrSearchFailed = errors.New("DIRECTORY_QUERY_FAILED")
	ErrFetchFailed  = errors.New("MENTOR_FETCH_FAILED")
)

// ES is the Elasticsearch-backed mentor directory. It satisfies
// matching.Directory; the pre-filter lives in the index, the exact
// overlap accounting stays in the retriever.
type ES struct {
	client   *elasticsearch.Client
	cache    *redis.Client
	index    string
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewES(client *elasticsearch.Client, cache *redis.Client, index string, cacheTTL time.Duration, log logger.Logger) *ES {
	return &ES{
		client:   client,
		cache:    cache,
		index:    index,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "directory"}),
	}
}

// FindByTagOverlap returns every mentor whose tags contain at least one
// term as a case-insensitive substring, up to searchSize hits.
func (d *ES) FindByTagOverlap(ctx context.Context, terms []string) ([]models.Mentor, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	req, err := buildTagOverlapRequest(d.index, terms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	mentors, err := d.search(ctx, req)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("tag overlap query executed", map[string]interface{}{
		"terms": len(terms),
		"hits":  len(mentors),
	})
	return mentors, nil
}

// FetchByID resolves mentor snapshots by id, reading through the Redis
// cache and falling back to an ids query for misses.
func (d *ES) FetchByID(ctx context.Context, ids []string) ([]models.Mentor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	mentors := make([]models.Mentor, 0, len(ids))
	var misses []string

	for _, id := range ids {
		if d.cache == nil {
			misses = append(misses, id)
			continue
		}
		val, err := d.cache.Get(ctx, snapshotKeyPrefix+id).Result()
		if err != nil {
			misses = append(misses, id)
			continue
		}
		var m models.Mentor
		if err := json.Unmarshal([]byte(val), &m); err != nil {
			misses = append(misses, id)
			continue
		}
		mentors = append(mentors, m)
	}

	if len(misses) == 0 {
		return mentors, nil
	}

	req, err := buildIDsRequest(d.index, misses)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	fetched, err := d.search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	for _, m := range fetched {
		if d.cache != nil {
			if data, err := json.Marshal(m); err == nil {
				d.cache.Set(ctx, snapshotKeyPrefix+m.ID, data, d.cacheTTL)
			}
		}
		mentors = append(mentors, m)
	}

	return mentors, nil
}

func (d *ES) search(ctx context.Context, req *esapi.SearchRequest) ([]models.Mentor, error) {
	res, err := req.Do(ctx, d.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrSearchFailed, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: status %s: %s", ErrSearchFailed, res.Status(), string(body))
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				ID     string        `json:"_id"`
				Source models.Mentor `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	mentors := make([]models.Mentor, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		m := hit.Source
		if m.ID == "" {
			m.ID = hit.ID
		}
		mentors = append(mentors, m)
	}
	return mentors, nil
}

// buildTagOverlapRequest builds a bool/should wildcard search over the
// tags field, one clause per term, at least one required.
func buildTagOverlapRequest(index string, terms []string) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, errors.New("index name is required")
	}

	should := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		should = append(should, map[string]interface{}{
			"wildcard": map[string]interface{}{
				"tags": map[string]interface{}{
					"value": "*" + strings.ToLower(term) + "*",
				},
			},
		})
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, err
	}

	size := searchSize
	return &esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}, nil
}

func buildIDsRequest(index string, ids []string) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, errors.New("index name is required")
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"ids": map[string]interface{}{
				"values": ids,
			},
		},
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, err
	}

	size := len(ids)
	return &esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}, nil
}
