package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type PipelineConfig struct {
	MinScore     int           `mapstructure:"min_score"`
	HotThreshold int           `mapstructure:"hot_threshold"`
	DigestSize   int           `mapstructure:"digest_size"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	RealertTTL   time.Duration `mapstructure:"realert_ttl"`
	Schedule     string        `mapstructure:"schedule"`
}

func (config PipelineConfig) validate() error {

	if config.MinScore < 0 || config.MinScore > 100 {
		return fmt.Errorf("min_score must be between 0 and 100")
	}

	if config.HotThreshold <= config.MinScore {
		return fmt.Errorf("hot_threshold must be strictly greater than min_score")
	}

	if config.DigestSize < 1 {
		return fmt.Errorf("digest_size must be at least 1")
	}

	if config.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative")
	}

	return nil
}

func (config PipelineConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("pipeline.min_score", "MIN_SCORE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("pipeline.hot_threshold", "HOT_THRESHOLD"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("pipeline.digest_size", "DIGEST_SIZE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("pipeline.fetch_timeout", "FETCH_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("pipeline.realert_ttl", "REALERT_TTL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("pipeline.schedule", "RUN_SCHEDULE"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
