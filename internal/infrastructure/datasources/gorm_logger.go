package datasources

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"campus-challenge.backend/pkg/logger"
)

var gormLogTarget = logger.GetLogger

// zapWriter feeds gorm's formatted lines into the service logger
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	gormLogTarget().Warn(fmt.Sprintf(format, args...), zap.String("component", "gorm"))
}

// newGormLogger reports slow and failed statements. Missing rows are an
// expected lookup outcome and stay quiet.
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
