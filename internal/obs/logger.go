// Package obs is the ambient observability stack: structured logging and
// Prometheus metrics shared by the transport reactor, handshake, and
// session packages. Grounded on the teacher's internal/logger (structured,
// leveled, key-value logging call sites) and internal/metrics
// (promauto-registered series per concern, one file per domain), adapted
// from the teacher's hand-rolled JSON logger to zap, the logging library
// the rest of the retrieval pack reaches for (see e.g.
// luxfi-consensus/validator/logger.go's zap.Field call sites).
//
// Never log plaintext, key material, or shared secrets; every call site
// in this core logs only participant/session IDs, algorithm names, and
// error values.
package obs

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps *zap.Logger with the small set of call sites this core
// needs, matching the teacher's Logger interface's Debug/Info/Warn/Error
// shape but using zap.Field directly instead of a hand-rolled Field type.
type Logger struct {
	z *zap.Logger
}

// NewLogger builds a production JSON logger, or a development console
// logger when ENTANGLEMENT_LOG_DEV is set (any non-empty value), mirroring
// the teacher's SAGE_LOG_LEVEL environment-driven construction in
// internal/logger.NewDefaultLogger.
func NewLogger() (*Logger, error) {
	var cfg zap.Config
	if os.Getenv("ENTANGLEMENT_LOG_DEV") != "" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewNop returns a Logger that discards everything, for tests.
func NewNop() *Logger { return &Logger{z: zap.NewNop()} }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// With returns a child logger carrying fields on every subsequent call,
// matching the teacher's Logger.WithFields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// Sync flushes any buffered log entries; callers should defer it in main.
func (l *Logger) Sync() error { return l.z.Sync() }
