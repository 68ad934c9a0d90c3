package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"romclerk/internal/config"
)

// skipConfigAnnotation marks commands that must run without a loaded config,
// such as config init on a fresh machine.
const skipConfigAnnotation = "skipConfigLoad"

func skipConfigAnnotations() map[string]string {
	return map[string]string{skipConfigAnnotation: "true"}
}

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// ensureConfig loads and validates the config once per process; every
// command that needs it shares the same instance.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = c.loadConfig()
	})
	return c.config, c.configErr
}

func (c *commandContext) loadConfig() (*config.Config, error) {
	cfg, _, _, err := config.Load(c.configPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations[skipConfigAnnotation] == "true" {
			return true
		}
	}
	return false
}

// shortRunID trims a run identifier to the prefix accepted back as input.
func shortRunID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
