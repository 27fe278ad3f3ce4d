package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	gatewayMocks "gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/gen/mocks/lib/gateway"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/analysis"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/local"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/gateway"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/models"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/wordlist"
)

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}

// newTestServer wires a full server around the given gateway, with an
// in-process cache.
func newTestServer(gw gateway.Client) server {
	selector, err := models.New(map[string]string{
		"llama": "llama3.2:3b",
		"gemma": "gemma2:2b",
	}, "llama")
	Ω(err).Should(BeNil())

	store := local.New()
	computers := []analysis.Computer{
		analysis.NewSentimentComputer(wordlist.Default()),
		analysis.NewNERComputer(),
		analysis.NewClassifyComputer(),
		analysis.NewSummarizeComputer(),
	}
	runners := make(map[string]*analysis.Runner, len(computers))
	for _, computer := range computers {
		runners[computer.Prefix()] = analysis.NewRunner(computer, gw, selector, store, time.Hour)
	}

	return server{controller: controller{runners: runners, selector: selector, cache: store}}
}

func postJSON(url, body string) (*http.Response, map[string]interface{}) {
	res, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	Ω(err).Should(BeNil())

	var decoded map[string]interface{}
	Ω(json.NewDecoder(res.Body).Decode(&decoded)).Should(BeNil())
	return res, decoded
}

func errorEnvelope(decoded map[string]interface{}) map[string]interface{} {
	envelope, ok := decoded["error"].(map[string]interface{})
	Ω(ok).Should(Equal(true))
	return envelope
}

var _ = Describe("Analysis endpoints", Ordered, func() {

	var _ = BeforeAll(func() {
		mockGateway := &gatewayMocks.Client{}
		mockGateway.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return(`{"sentiment":"POSITIVE","confidence":0.9,"explanation":"Happy."}`, nil)

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		newTestServer(mockGateway).RegisterRoutes(router)

		go router.Run("localhost:9997")

		// wait for server to start
		time.Sleep(1 * time.Second)
	})

	var _ = It("Should analyze valid sentiment requests", func() {
		res, decoded := postJSON("http://localhost:9997/sentiment", `{"text": "I love this!"}`)

		Ω(res.StatusCode).Should(Equal(http.StatusOK))
		Ω(decoded["sentiment"]).Should(Equal("POSITIVE"))
		Ω(decoded["confidence"]).Should(Equal(0.9))
		Ω(decoded["model"]).Should(Equal("llama3.2:3b"))
	})

	var _ = It("Should reject empty text", func() {
		res, decoded := postJSON("http://localhost:9997/sentiment", `{"text": "   "}`)

		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
		envelope := errorEnvelope(decoded)
		Ω(envelope["code"]).Should(Equal("VALIDATION_ERROR"))
		Ω(envelope["type"]).Should(Equal("ValidationError"))
	})

	var _ = It("Should reject sentiment text over 500 characters", func() {
		body, err := json.Marshal(gin.H{"text": strings.Repeat("a", 501)})
		Ω(err).Should(BeNil())

		res, _ := postJSON("http://localhost:9997/sentiment", string(body))
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})

	var _ = It("Should reject non-JSON bodies", func() {
		res, decoded := postJSON("http://localhost:9997/sentiment", `not json at all`)

		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
		Ω(errorEnvelope(decoded)["code"]).Should(Equal("VALIDATION_ERROR"))
	})

	var _ = It("Should reject single-word entity extraction requests", func() {
		res, _ := postJSON("http://localhost:9997/ner", `{"text": "Hello"}`)
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})

	var _ = It("Should reject short summarization requests", func() {
		res, _ := postJSON("http://localhost:9997/summarize", `{"text": "far too short"}`)
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})

	var _ = It("Should reject unknown summary types", func() {
		res, _ := postJSON("http://localhost:9997/summarize",
			`{"text": "one two three four five six seven eight nine ten", "options": {"type": "bullet"}}`)
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})

	var _ = It("Should reject empty category lists", func() {
		res, _ := postJSON("http://localhost:9997/classify", `{"text": "some text", "options": {"categories": []}}`)
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})
})

var _ = Describe("Gateway failure mapping", Ordered, func() {

	var _ = BeforeAll(func() {
		mockGateway := &gatewayMocks.Client{}
		mockGateway.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return("", gateway.ConnectionError{Reason: "connection refused"})

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		newTestServer(mockGateway).RegisterRoutes(router)

		go router.Run("localhost:9996")
		time.Sleep(1 * time.Second)
	})

	var _ = It("Should report an unreachable model as service unavailable", func() {
		res, decoded := postJSON("http://localhost:9996/sentiment", `{"text": "I love this!"}`)

		Ω(res.StatusCode).Should(Equal(http.StatusServiceUnavailable))
		envelope := errorEnvelope(decoded)
		Ω(envelope["code"]).Should(Equal("MODEL_CONNECTION_ERROR"))
		Ω(envelope["type"]).Should(Equal("ModelConnectionError"))
	})
})

var _ = Describe("Malformed completion mapping", Ordered, func() {

	var _ = BeforeAll(func() {
		mockGateway := &gatewayMocks.Client{}
		mockGateway.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return("I am sorry, I cannot help with that.", nil)

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		newTestServer(mockGateway).RegisterRoutes(router)

		go router.Run("localhost:9995")
		time.Sleep(1 * time.Second)
	})

	var _ = It("Should report a completion without JSON as a bad gateway", func() {
		res, decoded := postJSON("http://localhost:9995/sentiment", `{"text": "I love this!"}`)

		Ω(res.StatusCode).Should(Equal(http.StatusBadGateway))
		Ω(errorEnvelope(decoded)["code"]).Should(Equal("MALFORMED_RESPONSE"))
	})
})

var _ = Describe("Model management", Ordered, func() {

	var _ = BeforeAll(func() {
		mockGateway := &gatewayMocks.Client{}
		_, router := gin.CreateTestContext(httptest.NewRecorder())
		newTestServer(mockGateway).RegisterRoutes(router)

		go router.Run("localhost:9994")
		time.Sleep(1 * time.Second)
	})

	var _ = It("Should describe itself on the root route", func() {
		res, err := http.Get("http://localhost:9994/")
		Ω(err).Should(BeNil())
		Ω(res.StatusCode).Should(Equal(http.StatusOK))
	})

	var _ = It("Should report health with cache status", func() {
		res, err := http.Get("http://localhost:9994/health")
		Ω(err).Should(BeNil())
		Ω(res.StatusCode).Should(Equal(http.StatusOK))

		var decoded map[string]interface{}
		Ω(json.NewDecoder(res.Body).Decode(&decoded)).Should(BeNil())
		Ω(decoded["status"]).Should(Equal("healthy"))
		Ω(decoded["cache"]).Should(Equal("ready"))
	})

	var _ = It("Should list available models with the current selection", func() {
		res, err := http.Get("http://localhost:9994/available-models")
		Ω(err).Should(BeNil())
		Ω(res.StatusCode).Should(Equal(http.StatusOK))

		var decoded map[string]interface{}
		Ω(json.NewDecoder(res.Body).Decode(&decoded)).Should(BeNil())
		Ω(decoded["current_model"]).Should(Equal("llama3.2:3b"))

		available, ok := decoded["models"].(map[string]interface{})
		Ω(ok).Should(Equal(true))
		Ω(available).Should(HaveKey("llama"))
		Ω(available).Should(HaveKey("gemma"))
	})

	var _ = It("Should switch models by name", func() {
		res, decoded := postJSON("http://localhost:9994/set-model", `{"model_name": "gemma"}`)

		Ω(res.StatusCode).Should(Equal(http.StatusOK))
		Ω(decoded["status"]).Should(Equal("success"))
		Ω(decoded["current_model"]).Should(Equal("gemma2:2b"))
	})

	var _ = It("Should reject unknown model names and keep the current model", func() {
		res, decoded := postJSON("http://localhost:9994/set-model", `{"model_name": "mistral"}`)

		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
		envelope := errorEnvelope(decoded)
		Ω(envelope["code"]).Should(Equal("VALIDATION_ERROR"))
		Ω(fmt.Sprint(envelope["message"])).Should(ContainSubstring("available models"))

		res, err := http.Get("http://localhost:9994/available-models")
		Ω(err).Should(BeNil())
		var listing map[string]interface{}
		Ω(json.NewDecoder(res.Body).Decode(&listing)).Should(BeNil())
		Ω(listing["current_model"]).Should(Equal("gemma2:2b"))
	})

	var _ = It("Should reject a missing model name", func() {
		res, _ := postJSON("http://localhost:9994/set-model", `{}`)
		Ω(res.StatusCode).Should(Equal(http.StatusUnprocessableEntity))
	})
})
