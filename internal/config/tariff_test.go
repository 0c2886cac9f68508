package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTariffHolder(t *testing.T) {
	holder := NewStaticTariffHolder(TariffConfig{
		DefaultKwhValue:    0.88,
		DefaultFixedCost:   30,
		DefaultDiscountPct: 10,
	})

	cfg := holder.Get()
	assert.InDelta(t, 0.88, cfg.DefaultKwhValue, 1e-9)
	assert.InDelta(t, 30, cfg.DefaultFixedCost, 1e-9)
	assert.InDelta(t, 10, cfg.DefaultDiscountPct, 1e-9)
}

func TestValidateTariffConfig(t *testing.T) {
	require.NoError(t, validateTariffConfig(DefaultTariffConfig()))

	assert.Error(t, validateTariffConfig(TariffConfig{DefaultKwhValue: -1}))
	assert.Error(t, validateTariffConfig(TariffConfig{DefaultDiscountPct: 120}))
	assert.Error(t, validateTariffConfig(TariffConfig{DefaultDiscountPct: -3}))
}
