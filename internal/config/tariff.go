package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TariffConfig holds the billing defaults applied when an invoice omits them.
// Values are operator-editable without a redeploy: the file is watched and
// hot-reloaded.
type TariffConfig struct {
	DefaultKwhValue    float64 `mapstructure:"defaultKwhValue"`
	DefaultFixedCost   float64 `mapstructure:"defaultFixedCost"`
	DefaultDiscountPct float64 `mapstructure:"defaultDiscountPct"`
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		DefaultKwhValue:    0.95,
		DefaultFixedCost:   0,
		DefaultDiscountPct: 0,
	}
}

type TariffConfigHolder struct {
	current atomic.Value // holds TariffConfig
}

func NewTariffConfigHolder() (*TariffConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("tariff")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/backoffice/config")
	v.AddConfigPath("/etc/backoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultTariffConfig()
		v.SetDefault("tariff.defaultKwhValue", defaults.DefaultKwhValue)
		v.SetDefault("tariff.defaultFixedCost", defaults.DefaultFixedCost)
		v.SetDefault("tariff.defaultDiscountPct", defaults.DefaultDiscountPct)
	}

	var cfg TariffConfig
	if err := v.UnmarshalKey("tariff", &cfg); err != nil {
		return nil, err
	}
	if err := validateTariffConfig(cfg); err != nil {
		return nil, err
	}

	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TariffConfig
		if err := v.UnmarshalKey("tariff", &updated); err != nil {
			log.Printf("[tariff-config] reload failed: %v", err)
			return
		}
		if err := validateTariffConfig(updated); err != nil {
			log.Printf("[tariff-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tariff-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticTariffHolder wraps a fixed config with no file watching.
func NewStaticTariffHolder(cfg TariffConfig) *TariffConfigHolder {
	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *TariffConfigHolder) Get() TariffConfig {
	return h.current.Load().(TariffConfig)
}

func validateTariffConfig(cfg TariffConfig) error {
	if cfg.DefaultKwhValue < 0 {
		return errors.New("tariff.defaultKwhValue cannot be negative")
	}
	if cfg.DefaultDiscountPct < 0 || cfg.DefaultDiscountPct > 100 {
		return errors.New("tariff.defaultDiscountPct must be between 0 and 100")
	}
	return nil
}
