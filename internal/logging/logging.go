// Package logging builds the application logger. The interactive
// screen owns stdout, so log output goes to a file or nowhere.
package logging

import (
	"go.uber.org/zap"
)

// New returns a JSON file logger when path is non-empty, otherwise a
// nop logger.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
