package main

import (
	"sync"

	"tglang/internal/core/normalize"
	"tglang/internal/core/resources"
	"tglang/internal/core/symbols"
)

type commandContext struct {
	modelFlag *string

	once sync.Once
	res  *resources.Resources
	err  error
}

func newCommandContext(model *string) *commandContext {
	return &commandContext{modelFlag: model}
}

// resources loads the model once per process
func (c *commandContext) resources() (*resources.Resources, error) {
	c.once.Do(func() {
		cfg := resources.ConfigFromEnv()
		if c.modelFlag != nil && *c.modelFlag != "" {
			cfg.ModelPath = *c.modelFlag
		}
		c.res, c.err = resources.Load(cfg)
	})
	return c.res, c.err
}

// normalizer needs only the symbol table, not the model
func (c *commandContext) normalizer() (*normalize.Normalizer, error) {
	set, err := symbols.Load()
	if err != nil {
		return nil, err
	}
	return normalize.New(set), nil
}
