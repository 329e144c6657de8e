package logger

import (
	"go.uber.org/zap"
)

// New returns production zap logger writing messages of the given level and
// above. Empty level means info.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = lvl
	config.Encoding = "console"
	config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return config.Build()
}
