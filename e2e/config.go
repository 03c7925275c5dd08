package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// INSPECT_ADDR points at a running swapd inspect server, e.g.
	// "http://localhost:6060". Tests skip when unset.
	InspectAddr string `envconfig:"INSPECT_ADDR"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_TIMEOUT_SECONDS bounds each HTTP call against the daemon
	TimeoutSeconds int `envconfig:"E2E_TIMEOUT_SECONDS" default:"10"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
