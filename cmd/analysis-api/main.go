package main

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/analysis"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/gateway"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/models"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/wordlist"
)

// config structure
type analysisAPIConfig struct {
	lib.BaseConfig
	Server struct {
		HttpPort int `mapstructure:"http_port"`
	}
	Ollama gateway.OllamaConfig
	Models struct {
		Default   string
		Available map[string]string
	}
	Cache struct {
		Backend    cache.Type
		TtlSeconds map[string]int `mapstructure:"ttl_seconds"`
	}
	Redis         remote.RedisConfig
	Elasticsearch remote.ElasticsearchConfig
	Wordlists     string
}

var config analysisAPIConfig

func initConfig() {
	// Set default config values
	err := lib.InitializeConfig("./config/analysis-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port": 8080,
		},
		"ollama": map[string]interface{}{
			"host": "http://localhost:11434",
		},
		"models": map[string]interface{}{
			"default": "llama",
			"available": map[string]interface{}{
				"llama": "llama3.2:3b",
				"gemma": "gemma2:2b",
				"qwen":  "qwen2.5:3b",
				"phi3":  "phi3:3.8b",
			},
		},
		"cache": map[string]interface{}{
			"backend": string(cache.Redis),
			"ttl_seconds": map[string]interface{}{
				"default":   3600,
				"sentiment": 7200,
				"ner":       7200,
				"classify":  7200,
				"summarize": 7200,
			},
		},
		"redis": map[string]interface{}{
			"host": "localhost",
			"port": 6379,
		},
		"elasticsearch": map[string]interface{}{
			"host":  "localhost",
			"port":  9200,
			"index": "analysis-results",
		},
		"wordlists": "./config/wordlists.yml",
	}, &config)
	if err != nil {
		panic(err)
	}
}

func ttlFor(task string) time.Duration {
	seconds, ok := config.Cache.TtlSeconds[task]
	if !ok {
		seconds = config.Cache.TtlSeconds["default"]
	}
	if seconds <= 0 {
		seconds = 3600
	}
	return time.Duration(seconds) * time.Second
}

func cacheClient() remote.Client {
	switch config.Cache.Backend {
	case cache.Redis:
		return remote.NewRedisClient(config.Redis)
	case cache.Elasticsearch:
		client, err := remote.NewElasticsearchClient(config.Elasticsearch)
		if err != nil {
			// a broken cache must never stop the service; run uncached
			log.Warn().Err(err).Msg("failed to create elasticsearch client, caching disabled")
			return nil
		}
		return client
	case cache.None:
		return nil
	default:
		log.Fatal().Str("backend", string(config.Cache.Backend)).Msg("invalid cache backend type")
		return nil
	}
}

func main() {
	initConfig()
	go lib.HandleInterrupt()

	selector, err := models.New(config.Models.Available, config.Models.Default)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	words, err := wordlist.Load(config.Wordlists)
	if err != nil {
		log.Warn().Err(err).Msg("wordlist file not loaded, using built-in lists")
		words = wordlist.Default()
	}

	store := cacheClient()
	if store != nil && !store.Ready() {
		log.Warn().Msg("cache backend unreachable, requests will be computed uncached until it recovers")
	}

	gatewayClient := gateway.NewOllamaClient(config.Ollama.Host)

	computers := []analysis.Computer{
		analysis.NewSentimentComputer(words),
		analysis.NewNERComputer(),
		analysis.NewClassifyComputer(),
		analysis.NewSummarizeComputer(),
	}
	runners := make(map[string]*analysis.Runner, len(computers))
	for _, computer := range computers {
		runners[computer.Prefix()] = analysis.NewRunner(computer, gatewayClient, selector, store, ttlFor(computer.Prefix()))
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery(), cors.Default())

	c := controller{runners: runners, selector: selector, cache: store}
	s := server{controller: c}
	s.RegisterRoutes(r)

	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		log.Fatal().Err(err).Send()
	}
}
