package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	gatewayMocks "gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/gen/mocks/lib/gateway"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/analysis"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/local"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/models"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/wordlist"
)

type ControllerSuite struct {
	suite.Suite
	controller
	mockGateway *gatewayMocks.Client
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	selector, err := models.New(map[string]string{
		"llama": "llama3.2:3b",
		"gemma": "gemma2:2b",
	}, "llama")
	s.Require().NoError(err)

	s.mockGateway = &gatewayMocks.Client{}
	store := local.New()

	computer := analysis.NewSentimentComputer(wordlist.Default())
	s.controller = controller{
		runners: map[string]*analysis.Runner{
			computer.Prefix(): analysis.NewRunner(computer, s.mockGateway, selector, store, time.Hour),
		},
		selector: selector,
		cache:    store,
	}
}

func (s *ControllerSuite) Test_controller_Analyze() {
	s.mockGateway.On("Generate", mock.Anything, "llama3.2:3b", mock.AnythingOfType("string")).
		Return(`{"sentiment":"NEGATIVE","confidence":0.75,"explanation":"Frustrated tone."}`, nil).Once()

	result, err := s.Analyze(context.Background(), "sentiment", analysis.Request{Text: "This is broken again."})
	s.Require().NoError(err)

	sentiment := result.(*analysis.SentimentResult)
	s.Equal("NEGATIVE", sentiment.Sentiment)
	s.Equal(0.75, sentiment.Confidence)
	s.Equal("llama3.2:3b", sentiment.Model)
	s.mockGateway.AssertExpectations(s.T())
}

func (s *ControllerSuite) Test_controller_Analyze_UnknownTask() {
	_, err := s.Analyze(context.Background(), "translate", analysis.Request{Text: "bonjour"})
	s.Error(err)
}

func (s *ControllerSuite) Test_controller_SetModel() {
	current, ok := s.SetModel("gemma")
	s.True(ok)
	s.Equal("gemma2:2b", current)

	// an unknown name reports the unchanged selection
	current, ok = s.SetModel("mistral")
	s.False(ok)
	s.Equal("gemma2:2b", current)
}

func (s *ControllerSuite) Test_controller_Models() {
	available, current := s.Models()
	s.Equal("llama3.2:3b", current)
	s.Len(available, 2)
	s.Contains(available, "llama")
}

func (s *ControllerSuite) Test_controller_CacheReady() {
	s.True(s.CacheReady())

	s.controller.cache = nil
	s.False(s.CacheReady())
}
