package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// ElasticsearchIndexer indexes enriched listings to Elasticsearch
type ElasticsearchIndexer struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearchIndexer creates a new Elasticsearch indexer
func NewElasticsearchIndexer(addresses []string, indexName string) (*ElasticsearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ElasticsearchIndexer{
		client:    client,
		indexName: indexName,
	}, nil
}

// Index indexes a single listing
func (i *ElasticsearchIndexer) Index(ctx context.Context, job *domain.JobListing) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      i.indexName,
		DocumentID: job.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.Status())
	}

	return nil
}

// BulkIndex indexes multiple listings in one bulk request
func (i *ElasticsearchIndexer) BulkIndex(ctx context.Context, jobs []*domain.JobListing) error {
	if len(jobs) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for _, job := range jobs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": i.indexName,
				"_id":    job.ID,
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(job)
		if err != nil {
			log.Printf("marshal listing %s: %v", job.ID, err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := i.client.Bulk(bytes.NewReader(buf.Bytes()), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}

	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}

	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				log.Printf("bulk index error for %s: %s - %s",
					item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason)
			}
		}
	}

	return nil
}

// EnsureIndex creates the index with Vietnamese-friendly settings if it doesn't exist
func (i *ElasticsearchIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	// Salary amounts index as keywords because sentinel strings share the
	// columns with numbers.
	mapping := `{
		"settings": {
			"analysis": {
				"analyzer": {
					"vietnamese_analyzer": {
						"type": "custom",
						"tokenizer": "standard",
						"filter": ["lowercase", "asciifolding"]
					}
				}
			}
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"title": {
					"type": "text",
					"analyzer": "vietnamese_analyzer",
					"fields": {"keyword": {"type": "keyword"}}
				},
				"company": {"type": "text", "analyzer": "vietnamese_analyzer"},
				"location": {"type": "text", "analyzer": "vietnamese_analyzer"},
				"industry": {"type": "keyword"},
				"field": {"type": "keyword"},
				"raw_salary_text": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
				"currency": {"type": "keyword"},
				"currency_fix_reason": {"type": "keyword"},
				"is_quantifiable": {"type": "boolean"},
				"min_salary": {"type": "keyword"},
				"max_salary": {"type": "keyword"},
				"median_salary": {"type": "keyword"},
				"pay_period": {"type": "keyword"},
				"workdays_per_week": {"type": "integer"},
				"work_start": {"type": "keyword"},
				"work_end": {"type": "keyword"},
				"hours_per_day": {"type": "float"},
				"experience": {"type": "keyword"},
				"experience_tags": {"type": "keyword"},
				"languages": {"type": "keyword"},
				"age_min": {"type": "integer"},
				"age_max": {"type": "integer"},
				"benefit_groups": {"type": "text"},
				"benefit_count": {"type": "integer"},
				"company_size_min": {"type": "integer"},
				"company_size_max": {"type": "integer"},
				"description": {"type": "text", "analyzer": "vietnamese_analyzer"},
				"requirements": {"type": "text", "analyzer": "vietnamese_analyzer"},
				"benefits": {"type": "text", "analyzer": "vietnamese_analyzer"},
				"source": {"type": "keyword"},
				"source_url": {"type": "keyword"},
				"crawled_at": {"type": "date"}
			}
		}
	}`

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}

	return nil
}

// ES indexing is append-style over HTTP, nothing to close.
func (i *ElasticsearchIndexer) Close() error { return nil }
