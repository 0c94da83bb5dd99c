package logger

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"payme/api/internal/config"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

type Logger struct {
	log *slog.Logger
}

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	// new logger with options
	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	logger := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(logger)

	return Logger{log: logger}
}

// example Info("webhook processed", true, "provider", "payfast")
func (l Logger) Info(message string, isTemplate bool, args ...any) {
	l.printLog(LL_INFO, message, callerSkip(isTemplate), args...)
}

// example Error("find invoice error", true, "invoice_id", id, "error", err.Error())
func (l Logger) Error(message string, isTemplate bool, args ...any) {
	l.printLog(LL_ERROR, message, callerSkip(isTemplate), args...)
}

// use only on unrecoverable startup/shutdown paths
func (l Logger) Fatal(message string, isTemplate bool, args ...any) {
	l.printLog(LL_FATAL, message, callerSkip(isTemplate), args...)
}

func (l Logger) Debug(message string, args ...any) {
	l.printLog(LL_DEBUG, message, 1, args...)
}

func callerSkip(isTemplate bool) int {
	if isTemplate {
		return 2
	}
	return 1
}

func (l Logger) printLog(ll LogLevel, message string, skip int, args ...any) {
	_, file, line, _ := runtime.Caller(skip + 1)
	args = append(args, "source", file+":"+strconv.Itoa(line))

	switch ll {
	case LL_ERROR, LL_FATAL:
		l.log.Error(message, args...)
	case LL_INFO:
		l.log.Info(message, args...)
	case LL_DEBUG:
		l.log.Debug(message, args...)
	}
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
