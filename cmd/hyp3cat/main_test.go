package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging(t *testing.T) {
	defer func(l zerolog.Logger, lvl zerolog.Level) {
		log.Logger = l
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var prod bytes.Buffer
	setupLogging(&prod, "debug", "PROD")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	log.Info().Str("listing", "products").Msg("page fetched")

	var event map[string]any
	require.NoError(t, json.Unmarshal(prod.Bytes(), &event))
	require.Equal(t, "page fetched", event["message"])
	require.Equal(t, "products", event["listing"])

	var dev bytes.Buffer
	setupLogging(&dev, "bogus", "DEV")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Info().Msg("page fetched")
	require.Contains(t, dev.String(), "page fetched")
	require.Error(t, json.Unmarshal(dev.Bytes(), &event))
}
