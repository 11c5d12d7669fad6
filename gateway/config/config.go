// Package config loads the HTTP CAS gateway's own listen configuration.
// It is separate from pkg/config, which configures the Batcher and
// ObjectStore the gateway serves.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ServerConfig is the gateway's listen configuration.
type ServerConfig struct {
	Port string
}

// AppConfig holds the configuration loaded via Load.
var AppConfig ServerConfig

// Load overlays envFile (optional, missing is not an error) and reads
// GATEWAY_PORT from the environment.
func Load(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading env: %w", err)
		}
	}
	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		port = "8082"
	}
	AppConfig = ServerConfig{Port: port}
	return nil
}
