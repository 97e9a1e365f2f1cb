// Package config holds pipeline configuration, loaded from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseConnectionString string `yaml:"database_connection_string"`
	CatalogURL               string `yaml:"catalog_url"`
	OracleURL                string `yaml:"oracle_url"`
	OracleAPIKey             string `yaml:"oracle_api_key"`
	OracleModel              string `yaml:"oracle_model"`
}

// Load reads the file named by COURSEGRAPH_CONFIG (default coursegraph.yaml)
// if it exists, then applies environment overrides on top of defaults.
func Load() (*Config, error) {
	config := &Config{
		OracleURL:   "https://api.openai.com/v1",
		OracleModel: "gpt-4o-mini",
	}

	path := os.Getenv("COURSEGRAPH_CONFIG")
	if path == "" {
		path = "coursegraph.yaml"
	}
	content, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, fmt.Errorf("config: parse %v: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	override(&config.DatabaseConnectionString, "DATABASE_CONNECTION_STRING")
	override(&config.CatalogURL, "CATALOG_URL")
	override(&config.OracleURL, "ORACLE_URL")
	override(&config.OracleAPIKey, "ORACLE_API_KEY")
	override(&config.OracleModel, "ORACLE_MODEL")

	return config, nil
}

func override(field *string, name string) {
	if value := os.Getenv(name); value != "" {
		*field = value
	}
}
