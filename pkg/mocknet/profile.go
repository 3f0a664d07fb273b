package mocknet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Profile is a simulation parameter set loadable from a config file or
// environment, so test runs can be tuned without recompiling.
type Profile struct {
	DelayMillis        int64  `mapstructure:"delay_millis"`
	VariancePercentage int    `mapstructure:"variance_percentage"`
	ErrorPercentage    int    `mapstructure:"error_percentage"`
	Seed               int64  `mapstructure:"seed"`
	LogLevel           string `mapstructure:"log_level"`
}

// LoadProfile loads a profile from an optional mocknet.yaml (working
// directory or ./config) and MOCKNET_-prefixed environment variables, falling
// back to the package defaults. Values are validated when applied.
func LoadProfile() (*Profile, error) {
	v := viper.New()
	v.SetConfigName("mocknet")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("MOCKNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("delay_millis", defaultDelayMillis)
	v.SetDefault("variance_percentage", defaultVariancePct)
	v.SetDefault("error_percentage", defaultErrorPct)
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading profile: %w", err)
		}
		// No file; defaults and environment apply.
	}

	p := &Profile{}
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("error unmarshaling profile: %w", err)
	}
	return p, nil
}

// ApplyProfile configures the facade from a profile through the validating
// setters. A zero seed leaves the random source untouched.
func (m *MockClient) ApplyProfile(p *Profile) error {
	if err := m.SetDelay(p.DelayMillis); err != nil {
		return err
	}
	if err := m.SetVariancePercentage(p.VariancePercentage); err != nil {
		return err
	}
	if err := m.SetErrorPercentage(p.ErrorPercentage); err != nil {
		return err
	}
	if p.Seed != 0 {
		m.Reseed(p.Seed)
	}
	if p.LogLevel != "" {
		level, err := logrus.ParseLevel(p.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", p.LogLevel, err)
		}
		m.log.SetLevel(level)
	}
	return nil
}
