// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// how replicate datasets are combined: Sum or Mean
	Replicates string `mapstructure:"replicates"`

	// fraction of each gene's N terminus whose TA sites are ignored
	NTerminus float64 `mapstructure:"n-terminus"`

	// fraction of each gene's C terminus whose TA sites are ignored
	CTerminus float64 `mapstructure:"c-terminus"`
}

// New returns a new Config struct populated by Viper settings (either
// from the local settings.yaml) and/or command line arguments
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	return c
}
