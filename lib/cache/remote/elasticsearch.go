package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
}

func NewElasticsearchClient(conf ElasticsearchConfig) (Client, error) {
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, err
	}
	return &esClient{
		Client: c,
		index:  conf.Index,
	}, nil
}

type esClient struct {
	*elasticsearch.Client
	index string
}

// esDocument wraps a cache entry. Elasticsearch has no native per-document
// expiry, so the deadline is stored alongside the data and enforced on read.
type esDocument struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt int64           `json:"expires_at"`
}

type esGetResponse struct {
	Found  bool       `json:"found"`
	Source esDocument `json:"_source"`
}

func (e *esClient) Get(key string) ([]byte, error) {
	res, err := e.Client.Get(e.index, key)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, ErrNotFound
	} else if res.IsError() {
		return nil, errors.New(res.String())
	}

	var response esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}
	if !response.Found {
		return nil, ErrNotFound
	}
	if time.Now().Unix() >= response.Source.ExpiresAt {
		return nil, ErrNotFound
	}

	return response.Source.Data, nil
}

func (e *esClient) Set(key string, data []byte, ttl time.Duration) error {
	doc, err := json.Marshal(esDocument{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return err
	}

	res, err := e.Index(e.index, bytes.NewReader(doc), e.Index.WithDocumentID(key))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.New(res.String())
	}
	return nil
}

func (e *esClient) Delete(key string) (bool, error) {
	res, err := e.Client.Delete(e.index, key)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return false, nil
	} else if res.IsError() {
		return false, errors.New(res.String())
	}
	return true, nil
}

func (e *esClient) Ready() bool {
	res, err := e.Info()
	if err != nil || res.StatusCode != 200 {
		return false
	}
	return true
}
