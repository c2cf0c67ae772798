package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-auth-client/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup("PROD", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	log.Debug().Msg("hidden")
	log.Info().Str("route", "/home").Msg("navigated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "navigated", entry["message"])
	require.Equal(t, "/home", entry["route"])
}

func TestSetup_DevIsDebug(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup("DEV", &buf)

	log.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}
