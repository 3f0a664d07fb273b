// Package client holds the request/response client abstraction the mock
// network layer plugs into: the configuration builder, the callback and lazy
// single result shapes, the response envelope, the normalized error record
// and the executor (work queue) contracts.
package client

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Config is the assembled client configuration. The mock layer borrows the
// callback executor, error handler and logger from it and substitutes its own
// transport behavior.
type Config struct {
	baseURL          string
	callbackExecutor Executor
	errorHandler     ErrorHandler
	logger           *logrus.Logger
}

// BaseURL returns the configured endpoint.
func (c *Config) BaseURL() string {
	return c.baseURL
}

// CallbackExecutor returns the executor callback results are delivered on.
func (c *Config) CallbackExecutor() Executor {
	return c.callbackExecutor
}

// ErrorHandler returns the configured error handler.
func (c *Config) ErrorHandler() ErrorHandler {
	return c.errorHandler
}

// Logger returns the configured logger.
func (c *Config) Logger() *logrus.Logger {
	return c.logger
}

// Builder assembles a Config. All setters return the builder for chaining.
type Builder struct {
	cfg Config
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BaseURL sets the endpoint the client is (nominally) configured against.
func (b *Builder) BaseURL(url string) *Builder {
	b.cfg.baseURL = url
	return b
}

// CallbackExecutor sets the executor callback results are delivered on.
func (b *Builder) CallbackExecutor(e Executor) *Builder {
	b.cfg.callbackExecutor = e
	return b
}

// ErrorHandler sets the handler every failed call's error passes through.
func (b *Builder) ErrorHandler(h ErrorHandler) *Builder {
	b.cfg.errorHandler = h
	return b
}

// Logger sets the structured logger.
func (b *Builder) Logger(l *logrus.Logger) *Builder {
	b.cfg.logger = l
	return b
}

// Build validates the configuration and fills in defaults: a goroutine-per-
// task callback executor, an identity error handler and a fresh logger.
func (b *Builder) Build() (*Config, error) {
	if b.cfg.baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	cfg := b.cfg
	if cfg.callbackExecutor == nil {
		cfg.callbackExecutor = GoExecutor{}
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = identityErrorHandler{}
	}
	if cfg.logger == nil {
		cfg.logger = logrus.New()
	}
	return &cfg, nil
}
