package testutil

import (
	"io"

	"github.com/dtroode/shopkeeper-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
