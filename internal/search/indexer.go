// internal/search/indexer.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
	"application-intake/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Document is the searchable projection of a submission.
type Document struct {
	ID                   string   `json:"id"`
	SubmittedAt          string   `json:"submittedAt"`
	ApplicationType      string   `json:"applicationType"`
	FullName             string   `json:"fullName"`
	Email                string   `json:"email"`
	Mobile               string   `json:"mobile"`
	City                 string   `json:"city"`
	State                string   `json:"state"`
	College              string   `json:"college"`
	Degree               string   `json:"degree"`
	CurrentYear          string   `json:"currentYear"`
	Technologies         []string `json:"technologies"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Score                *int     `json:"score,omitempty"`
	Status               string   `json:"status,omitempty"`
	Destinations         []string `json:"destinations"`
	FailedDestinations   []string `json:"failedDestinations"`
}

// NewDocument projects sub into its index document.
func NewDocument(sub models.Submission) Document {
	rec := sub.Evaluation.Record
	doc := Document{
		ID:                   sub.ID,
		SubmittedAt:          sub.SubmittedAt,
		ApplicationType:      string(rec.ApplicationType),
		FullName:             rec.FullName,
		Email:                rec.Email,
		Mobile:               rec.Mobile,
		City:                 rec.City,
		State:                rec.State,
		College:              rec.College,
		Degree:               rec.Degree,
		CurrentYear:          rec.CurrentYear,
		Technologies:         rec.Technologies,
		ProgrammingLanguages: rec.ProgrammingLanguages,
		Score:                sub.Evaluation.Score,
		Destinations:         sub.Evaluation.Destinations,
		FailedDestinations:   []string{},
	}
	if sub.Evaluation.Status != nil {
		doc.Status = string(*sub.Evaluation.Status)
	}
	for _, d := range sub.Destinations {
		if !d.Appended {
			doc.FailedDestinations = append(doc.FailedDestinations, d.Table)
		}
	}
	return doc
}

// Mapping is the index body created when the index does not exist yet.
var Mapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"id":                   map[string]interface{}{"type": "keyword"},
			"submittedAt":          map[string]interface{}{"type": "date"},
			"applicationType":      map[string]interface{}{"type": "keyword"},
			"fullName":             map[string]interface{}{"type": "text"},
			"email":                map[string]interface{}{"type": "keyword"},
			"mobile":               map[string]interface{}{"type": "keyword"},
			"city":                 map[string]interface{}{"type": "keyword"},
			"state":                map[string]interface{}{"type": "keyword"},
			"college":              map[string]interface{}{"type": "text"},
			"degree":               map[string]interface{}{"type": "keyword"},
			"currentYear":          map[string]interface{}{"type": "keyword"},
			"technologies":         map[string]interface{}{"type": "keyword"},
			"programmingLanguages": map[string]interface{}{"type": "keyword"},
			"score":                map[string]interface{}{"type": "integer"},
			"status":               map[string]interface{}{"type": "keyword"},
			"destinations":         map[string]interface{}{"type": "keyword"},
			"failedDestinations":   map[string]interface{}{"type": "keyword"},
		},
	},
}

// Indexer writes submissions into an Elasticsearch index.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "search-indexer", "index": index}),
	}
}

// EnsureIndex creates the index with Mapping unless it already exists.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(ctx, i.client)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}
	exists.Body.Close()

	switch exists.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return errors.NewSearchIndexFailedError(i.index, fmt.Errorf("exists check failed: %s", exists.Status()))
	}

	body, err := json.Marshal(Mapping)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}

	res, err := esapi.IndicesCreateRequest{Index: i.index, Body: bytes.NewReader(body)}.Do(ctx, i.client)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchIndexFailedError(i.index, fmt.Errorf("create failed: %s", res.String()))
	}

	i.logger.Info("search index created", nil)
	return nil
}

// Index stores sub under its submission ID.
func (i *Indexer) Index(ctx context.Context, sub models.Submission) error {
	body, err := json.Marshal(NewDocument(sub))
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: sub.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchIndexFailedError(i.index, fmt.Errorf("index failed: %s", res.String()))
	}

	i.logger.Debug("submission indexed", map[string]interface{}{"submissionId": sub.ID})
	return nil
}
