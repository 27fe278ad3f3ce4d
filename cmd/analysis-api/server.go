package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/analysis"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/extract"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/gateway"
	libtext "gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/text"
)

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.Root)
	r.GET("/health", s.Health)
	r.GET("/available-models", s.AvailableModels)
	r.POST("/set-model", s.SetModel)
	r.POST("/sentiment", s.analyze("sentiment", validateSentimentRequest))
	r.POST("/ner", s.analyze("ner", validateNERRequest))
	r.POST("/classify", s.analyze("classify", validateClassifyRequest))
	r.POST("/summarize", s.analyze("summarize", validateSummarizeRequest))
}

type analysisBody struct {
	Text    string                 `json:"text"`
	Options map[string]interface{} `json:"options"`
}

type modelSelection struct {
	ModelName string `json:"model_name"`
}

func (s server) Root(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "Multi-purpose text analysis service.",
		"endpoints": []string{
			"/sentiment", "/ner", "/classify", "/summarize",
			"/set-model", "/available-models", "/health",
		},
	})
}

func (s server) Health(c *gin.Context) {
	cacheStatus := "unavailable"
	if s.controller.CacheReady() {
		cacheStatus = "ready"
	}
	c.JSON(200, gin.H{"status": "healthy", "cache": cacheStatus})
}

func (s server) AvailableModels(c *gin.Context) {
	available, current := s.controller.Models()
	c.JSON(200, gin.H{"models": available, "current_model": current})
}

func (s server) SetModel(c *gin.Context) {
	var body modelSelection
	if err := c.ShouldBindJSON(&body); err != nil || body.ModelName == "" {
		handleError(c, analysis.NewValidationError("model_name is required"))
		return
	}

	current, ok := s.controller.SetModel(body.ModelName)
	if !ok {
		available, _ := s.controller.Models()
		names := make([]string, 0, len(available))
		for name := range available {
			names = append(names, name)
		}
		sort.Strings(names)
		handleError(c, analysis.NewValidationError(fmt.Sprintf("invalid model name - available models: %s", strings.Join(names, ", "))))
		return
	}

	c.JSON(200, gin.H{
		"status":        "success",
		"message":       fmt.Sprintf("Model set to %s", body.ModelName),
		"current_model": current,
	})
}

func (s server) analyze(task string, validate func(analysisBody) []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body analysisBody
		if err := c.ShouldBindJSON(&body); err != nil {
			handleError(c, analysis.NewValidationError("request body must be a valid JSON object"))
			return
		}
		body.Text = strings.TrimSpace(body.Text)

		if violations := validate(body); len(violations) > 0 {
			handleError(c, analysis.ValidationError{Violations: violations})
			return
		}

		result, err := s.controller.Analyze(c.Request.Context(), task, analysis.Request{
			Text:     body.Text,
			Options:  body.Options,
			Received: time.Now(),
		})
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(200, result)
	}
}

func validateSentimentRequest(body analysisBody) []string {
	var violations []string
	if body.Text == "" {
		violations = append(violations, "text must not be empty")
	}
	if utf8.RuneCountInString(body.Text) > 500 {
		violations = append(violations, "text must be at most 500 characters")
	}
	return violations
}

func validateNERRequest(body analysisBody) []string {
	var violations []string
	if body.Text == "" {
		violations = append(violations, "text must not be empty")
	}
	if utf8.RuneCountInString(body.Text) > 1000 {
		violations = append(violations, "text must be at most 1000 characters")
	}
	if body.Text != "" && libtext.WordCount(body.Text) < 2 {
		violations = append(violations, "text must contain at least 2 words")
	}
	return violations
}

func validateClassifyRequest(body analysisBody) []string {
	var violations []string
	if body.Text == "" {
		violations = append(violations, "text must not be empty")
	}

	opts := analysis.Options(body.Options)
	categories, present, err := opts.Strings("categories")
	if present && err != nil {
		violations = append(violations, "categories option must be a list of strings")
	} else if present && len(categories) == 0 {
		violations = append(violations, "categories option must not be empty")
	}
	return violations
}

func validateSummarizeRequest(body analysisBody) []string {
	var violations []string
	if libtext.WordCount(body.Text) < 10 {
		violations = append(violations, "text must contain at least 10 words")
	}

	opts := analysis.Options(body.Options)
	summaryType := opts.String("type", analysis.SummaryTypeAbstractive)
	if summaryType != analysis.SummaryTypeAbstractive && summaryType != analysis.SummaryTypeExtractive {
		violations = append(violations, "type option must be abstractive or extractive")
	}
	if _, ok := body.Options["max_length"]; ok && opts.Int("max_length", 0) <= 0 {
		violations = append(violations, "max_length option must be a positive number")
	}
	return violations
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("abort called on nil error")
	}

	var status int
	var errType, code string
	switch err.(type) {
	case analysis.ValidationError:
		status, errType, code = 422, "ValidationError", "VALIDATION_ERROR"
	case gateway.ConnectionError:
		status, errType, code = 503, "ModelConnectionError", "MODEL_CONNECTION_ERROR"
	case extract.MalformedResponseError:
		status, errType, code = 502, "MalformedResponseError", "MALFORMED_RESPONSE"
	case analysis.InvalidModelResponseError:
		status, errType, code = 502, "InvalidModelResponseError", "INVALID_MODEL_RESPONSE"
	default:
		status, errType, code = 500, "ServiceError", "SERVICE_ERROR"
	}

	c.JSON(status, gin.H{"error": gin.H{
		"type":    errType,
		"code":    code,
		"message": err.Error(),
	}})
	c.Abort()
}
