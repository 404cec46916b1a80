package logging

import (
	"go.uber.org/zap"
)

// ZapSink forwards entries to a zap logger.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps an existing zap logger. A nil logger falls back to the
// production configuration.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &ZapSink{logger: logger}
}

// Log implements Sink.
func (s *ZapSink) Log(entry Entry) {
	fields := make([]zap.Field, 0, 2)
	if entry.Err != "" {
		fields = append(fields, zap.String("error", entry.Err))
	}
	if !entry.Time.IsZero() {
		fields = append(fields, zap.Time("posted", entry.Time))
	}
	switch entry.Level {
	case LevelDebug:
		s.logger.Debug(entry.Message, fields...)
	case LevelWarning:
		s.logger.Warn(entry.Message, fields...)
	case LevelError:
		s.logger.Error(entry.Message, fields...)
	default:
		s.logger.Info(entry.Message, fields...)
	}
}
