package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type storeDriver string

const (
	StoreDriverJSON   storeDriver = "json"
	StoreDriverSQLite storeDriver = "sqlite"
)

type StoreConfig struct {
	Driver storeDriver `mapstructure:"driver"`
	Path   string      `mapstructure:"path"`
}

func (config StoreConfig) validate() error {

	switch config.Driver {
	case StoreDriverJSON, StoreDriverSQLite:
	default:
		return fmt.Errorf("driver must be one of: json, sqlite")
	}

	if config.Path == "" {
		return fmt.Errorf("missing variable: store path")
	}

	return nil
}

func (config StoreConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("store.driver", "STORE_DRIVER"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("store.path", "STORE_PATH"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
