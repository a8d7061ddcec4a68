package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	defaultHTTPHost   = "127.0.0.1"
	defaultHTTPPort   = 8787
	defaultSQLitePath = "productsmanager.db"
	defaultTokenTTL   = 12 * time.Hour
	defaultExportURL  = "file:///tmp/productsmanager-exports?create_dir=1"
)

// Storage drivers supported by the persistence layer.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Host     string `json:"host" yaml:"host"`
		Port     int    `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
			WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout  time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Export *ExportConfig `json:"export" yaml:"export"`
}

// StorageConfig selects and configures the relational backend.
type StorageConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver      string `json:"driver" yaml:"driver"`
	SQLitePath  string `json:"sqlitePath" yaml:"sqlitePath"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

// ExportConfig points catalog exports at a gocloud.dev blob bucket URL.
type ExportConfig struct {
	BucketURL string `json:"bucketURL" yaml:"bucketURL"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// Output is "stdout", "stderr" or a file path. The terminal UI logs to a file
	// so log lines do not interleave with prompts.
	Output string `json:"output" yaml:"output"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Explicit paths win over the working directory.
	searchPaths := make([]string, 0, len(configPath)+1)
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}
	searchPaths = append(searchPaths, defaultPath)

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// STORAGE_SQLITEPATH -> storage.sqlitePath
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	searchPaths := []string{"config", "../config", "../../config"}
	if dir := os.Getenv("PRODUCTSMANAGER_CONFIG_DIR"); dir != "" {
		searchPaths = append([]string{dir}, searchPaths...)
	}

	cfg, err := LoadWithEnv[Config]("config", searchPaths...)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.Host) == "" {
		cfg.HTTP.Host = defaultHTTPHost
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverSQLite
	}
	if cfg.Storage.Driver == DriverSQLite && cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = defaultSQLitePath
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Export == nil {
		cfg.Export = &ExportConfig{}
	}
	if cfg.Export.BucketURL == "" {
		cfg.Export.BucketURL = defaultExportURL
	}
}

func (cfg *Config) validate() error {
	switch cfg.Storage.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("storage driver is postgres but the postgres section is missing")
		}
	default:
		return errors.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
