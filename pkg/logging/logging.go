// Package logging configures the process-wide zap logger. Logs go to
// stderr so stdout only carries scan output.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ctxgen/pkg/version"
)

// AppName is attached to every log entry.
const AppName = "ctxgen"

// Logger is the global logger instance
var Logger = zap.NewNop()

// Setup builds the global logger. The default configuration only reports
// warnings and errors in console format; debug switches to zap's
// development configuration.
func Setup(debug bool) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    AppName,
		"appVersion": version.Version,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
