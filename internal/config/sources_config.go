package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type SourcesConfig struct {
	RequestDelay         time.Duration `mapstructure:"request_delay"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	SerpAPIKey           string        `mapstructure:"serpapi_key"`
	LinkedIn             bool          `mapstructure:"linkedin"`
	Indeed               bool          `mapstructure:"indeed"`
	Wellfound            bool          `mapstructure:"wellfound"`
	Aboveboard           bool          `mapstructure:"aboveboard"`
}

func (config SourcesConfig) validate() error {
	if config.RequestDelay < 0 {
		return fmt.Errorf("request_delay must be non-negative")
	}
	return nil
}

func (config SourcesConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("sources.request_delay", "REQUEST_DELAY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.max_requests_per_second", "MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.serpapi_key", "SERPAPI_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.linkedin", "SOURCE_LINKEDIN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.indeed", "SOURCE_INDEED"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.wellfound", "SOURCE_WELLFOUND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("sources.aboveboard", "SOURCE_ABOVEBOARD"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
