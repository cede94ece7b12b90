// internal/directory/indexer.go
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"mentor-match/internal/common/logger"
	"mentor-match/internal/models"
)

var ErrIndexFailed = errors.New("MENTOR_INDEX_FAILED")

// Indexer writes mentor documents into the directory index. Tag
// projection runs here, deterministically, on every index call.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "indexer"}),
	}
}

// Index stores one mentor snapshot with freshly derived tags. The
// input mentor is not mutated.
func (ix *Indexer) Index(ctx context.Context, m models.Mentor) error {
	if m.ID == "" {
		return fmt.Errorf("%w: mentor id is required", ErrIndexFailed)
	}

	m.Tags = BuildTags(&m)

	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      ix.index,
		DocumentID: m.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%w: status %s: %s", ErrIndexFailed, res.Status(), string(respBody))
	}

	ix.logger.Info("mentor indexed", map[string]interface{}{
		"mentorId": m.ID,
		"tags":     len(m.Tags),
	})
	return nil
}
