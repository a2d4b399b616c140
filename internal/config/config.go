package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/hh-analyst/pkg/hh"
)

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=json console"`
	Host      string `yaml:"host"` // default 0.0.0.0
	Port      string `yaml:"port"` // default PORT env or 8080

	HH struct {
		BaseURL   string `yaml:"base_url" validate:"omitempty,url"`
		UserAgent string `yaml:"user_agent" validate:"required"`
	} `yaml:"hh"`

	// Search is the criteria of the example run
	Search hh.Criteria `yaml:"search"`

	OutputDir string        `yaml:"output_dir"`
	Pause     time.Duration `yaml:"pause" validate:"gte=0"`

	Neo4j struct {
		URI      string `yaml:"uri"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"neo4j"` // optional sink

	Sheets struct {
		CredentialsPath string `yaml:"credentials_path"`
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		Tab             string `yaml:"tab"`
	} `yaml:"sheets"` // optional sink
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	cfg := Config{
		LogLevel:  "info",
		LogFormat: "json",
		Host:      "0.0.0.0",
		Port:      "8080",
		Search:    hh.DefaultCriteria(),
		Pause:     time.Second,
	}
	cfg.HH.BaseURL = "https://api.hh.ru/vacancies"
	cfg.HH.UserAgent = "HHAnalyst/0.1 (sweeetdozer@gmail.com)"
	cfg.Search.PerPage = 20
	cfg.Sheets.Tab = "Vacancies"

	return cfg
}

// Neo4jEnabled reports whether the graph sink is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// SheetsEnabled reports whether the spreadsheet sink is configured
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

// Load populates config from defaults, the optional HH_CONFIG_FILE and environment variables
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("HH_CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadYAML overlays path on cfg; a missing file leaves cfg untouched
func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.Host, "MCP_HOST")
	setString(&cfg.Port, "PORT")

	setString(&cfg.HH.BaseURL, "HH_BASE_URL")
	setString(&cfg.HH.UserAgent, "HH_USER_AGENT")
	setString(&cfg.Search.Text, "HH_SEARCH_TEXT")
	if v := os.Getenv("HH_EXPERIENCE"); v != "" {
		cfg.Search.Experience = hh.Experience(v)
	}
	setString(&cfg.Search.WorkFormat, "HH_WORK_FORMAT")
	setString(&cfg.OutputDir, "HH_OUTPUT_DIR")

	var parseErrs []string
	if err := setInt(&cfg.Search.Area, "HH_AREA"); err != nil {
		parseErrs = append(parseErrs, err.Error())
	}
	if err := setInt(&cfg.Search.PerPage, "HH_PER_PAGE"); err != nil {
		parseErrs = append(parseErrs, err.Error())
	}
	if v := os.Getenv("HH_PAUSE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("HH_PAUSE: %v", err))
		} else {
			cfg.Pause = d
		}
	}

	setString(&cfg.Neo4j.URI, "NEO4J_URI")
	setString(&cfg.Neo4j.Username, "NEO4J_USERNAME")
	setString(&cfg.Neo4j.Password, "NEO4J_PASSWORD")

	setString(&cfg.Sheets.CredentialsPath, "GOOGLE_SHEETS_CREDENTIALS_PATH")
	setString(&cfg.Sheets.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setString(&cfg.Sheets.Tab, "GOOGLE_SHEETS_TAB")

	if len(parseErrs) > 0 {
		return fmt.Errorf("invalid environment variables: %s", strings.Join(parseErrs, "; "))
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

var validate = validator.New()

// Validate checks cfg, including the search criteria, and the
// cross-field requirements of the optional sinks
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var missingVars []string
	if cfg.Neo4jEnabled() {
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}
	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return nil
}

// ValidateCriteria checks a single set of search criteria
func ValidateCriteria(c hh.Criteria) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("criteria: %w", err)
	}
	return nil
}
