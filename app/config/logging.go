package config

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// NewLogger returns the process logger at the given level
// (debug|info|warn|error|off). Unknown levels fall back to warn.
func NewLogger(level string) *log.Logger {
	logger := log.New("estate")
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DEBUG)
	case "info":
		logger.SetLevel(log.INFO)
	case "warn", "":
		logger.SetLevel(log.WARN)
	case "error":
		logger.SetLevel(log.ERROR)
	case "off":
		logger.SetLevel(log.OFF)
	default:
		logger.SetLevel(log.WARN)
		logger.Warnf("unknown loglevel: %s . fall-backed to warn", level)
	}
	return logger
}
