// Package logging builds the zap logger shared by the CLI and the
// libraries it configures.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chazu/sfgeom/pkg/config"
)

// New builds a logger from the log section. Development mode writes
// human-readable console output; otherwise JSON goes to stderr.
func New(c config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	if c.Level != "" {
		lvl, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "logging: level %q", c.Level)
		}
		zc.Level = lvl
	}
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logging: build")
	}
	return l.Named("sfgeom"), nil
}
