package main

import (
	"context"
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/analysis"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/text-analysis/lib/models"
)

type controller struct {
	runners  map[string]*analysis.Runner
	selector *models.Selector
	cache    remote.Client
}

func (c controller) Analyze(ctx context.Context, task string, req analysis.Request) (analysis.Result, error) {
	runner, ok := c.runners[task]
	if !ok {
		return nil, fmt.Errorf("no runner registered for task %s", task)
	}
	return runner.Run(ctx, req)
}

// SetModel switches the active model for every task. It reports the model
// identifier in effect after the call, whether or not the switch happened.
func (c controller) SetModel(name string) (string, bool) {
	ok := c.selector.Select(name)
	return c.selector.Current(), ok
}

func (c controller) Models() (map[string]string, string) {
	return c.selector.Available(), c.selector.Current()
}

// CacheReady reports backend reachability for the health endpoint. A cold
// cache is a degraded mode, not an unhealthy one.
func (c controller) CacheReady() bool {
	return c.cache != nil && c.cache.Ready()
}
