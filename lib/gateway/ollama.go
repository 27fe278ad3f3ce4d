package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib"
)

type OllamaConfig struct {
	Host string
}

func NewOllamaClient(host string) Client {
	return &ollama{
		host:       host,
		httpClient: http.DefaultClient,
	}
}

type ollama struct {
	host       string
	httpClient lib.HttpClient
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (o *ollama) Generate(ctx context.Context, model, prompt string) (string, error) {
	b, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", ConnectionError{Reason: fmt.Sprintf("failed to get model response: %v", err)}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", ConnectionError{Reason: fmt.Sprintf("failed to read model response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", ConnectionError{Reason: fmt.Sprintf("model backend returned status %d: %s", resp.StatusCode, string(body))}
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", ConnectionError{Reason: fmt.Sprintf("unexpected model backend response: %v", err)}
	}

	return gr.Response, nil
}
