package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ecommerce-scd2/pkg/logger"
)

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no debe salir")
	log.WithStr("batch_id", "b-1").Warn().Int("changed", 3).Msg("lote aplicado")

	out := buf.String()
	assert.NotContains(t, out, "no debe salir")
	assert.Contains(t, out, `"batch_id":"b-1"`)
	assert.Contains(t, out, `"changed":3`)
	assert.Contains(t, out, `"message":"lote aplicado"`)
}

func TestNop_NoEscribe(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Error().Msg("descartado") })
}
