package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AuthorityPath string
	TermsPath     string
	DataDir       string
	DBPath        string

	Country     string
	RulesSource string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AuthorityPath: getEnv("AUTHORITY_PATH", filepath.Join(cwd, "sources", "banned_items.csv")),
		TermsPath:     getEnv("TERMS_PATH", filepath.Join(cwd, "sources", "search_terms.csv")),
		DataDir:       getEnv("DATA_DIR", filepath.Join(cwd, "data")),
		DBPath:        getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		Country:     getEnv("COUNTRY", "KR"),
		RulesSource: getEnv("RULES_SOURCE", "국토교통부(2020-09-28)"),
	}

	return cfg, nil
}

func (c Config) ItemsPath() string {
	return filepath.Join(c.DataDir, fmt.Sprintf("items.%s.json", strings.ToLower(c.Country)))
}

func (c Config) SuggestPath() string {
	return filepath.Join(c.DataDir, fmt.Sprintf("autocomplete.%s.json", strings.ToLower(c.Country)))
}

func (c Config) CategoriesPath() string {
	return filepath.Join(c.DataDir, fmt.Sprintf("categories.%s.json", strings.ToLower(c.Country)))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
