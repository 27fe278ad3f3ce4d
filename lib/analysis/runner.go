package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/extract"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/gateway"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/models"
)

// Runner executes one task end to end: model snapshot, cache lookup, gateway
// call, extraction, validation, cache write. Cache failures are absorbed and
// logged so the service degrades to always-compute when the store is down.
type Runner struct {
	computer Computer
	gateway  gateway.Client
	selector *models.Selector
	cache    remote.Client // nil disables caching
	ttl      time.Duration
}

func NewRunner(computer Computer, gw gateway.Client, selector *models.Selector, cacheClient remote.Client, ttl time.Duration) *Runner {
	return &Runner{
		computer: computer,
		gateway:  gw,
		selector: selector,
		cache:    cacheClient,
		ttl:      ttl,
	}
}

func (r *Runner) Task() string {
	return r.computer.Prefix()
}

func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if req.Received.IsZero() {
		req.Received = time.Now()
	}

	// one snapshot per request: the same value feeds the fingerprint and
	// the gateway call
	model := r.selector.Current()
	key := cache.Fingerprint(r.computer.Prefix(), model, req.Text, req.Options)

	if result, ok := r.cachedResult(key, model); ok {
		return result, nil
	}

	completion, err := r.gateway.Generate(ctx, model, r.computer.Prompt(req))
	if err != nil {
		return nil, err
	}

	obj, err := extract.Object(completion)
	if err != nil {
		return nil, err
	}

	result, err := r.computer.Validate(req, obj)
	if err != nil {
		return nil, err
	}
	result.StampModel(model)

	r.store(key, result)
	return result, nil
}

func (r *Runner) cachedResult(key, model string) (Result, bool) {
	if r.cache == nil {
		return nil, false
	}

	b, err := r.cache.Get(key)
	if err == remote.ErrNotFound {
		return nil, false
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed, computing")
		return nil, false
	}

	result := r.computer.NewResult()
	if err := json.Unmarshal(b, result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("undecodable cache entry, computing")
		return nil, false
	}

	// an entry written under another model is a miss, which is what makes a
	// model switch observable without an explicit cache flush
	if result.ModelName() != model {
		return nil, false
	}

	return result, true
}

func (r *Runner) store(key string, result Result) {
	if r.cache == nil {
		return
	}

	b, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to serialize result for cache")
		return
	}

	if err := r.cache.Set(key, b, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
