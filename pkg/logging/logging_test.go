package logging_test

import (
	"testing"

	"github.com/masonbuild/mason/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		logging.SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGetLogger(t *testing.T) {
	logger := logging.GetLogger("executor")
	// The component logger must be usable without further setup.
	logger.Debug().Msg("probe")
	assert.NotNil(t, logger)
}
