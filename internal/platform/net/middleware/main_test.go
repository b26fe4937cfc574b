package middleware_test

import (
	"os"
	"testing"

	"tglang/internal/platform/logger"
	kit "tglang/internal/platform/testkit"
)

// logs collects everything the root logger writes during this package's tests
var logs = &kit.LogBuffer{}

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: logs})
	os.Exit(m.Run())
}
