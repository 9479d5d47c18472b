package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "CATALOG"
	configFileEnvName = "CATALOG_CONFIG_FILE"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type HTTP struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Logger struct {
	Development       bool   `mapstructure:"-"`
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type Store struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type Config struct {
	Env    string `mapstructure:"env"`
	HTTP   HTTP   `mapstructure:"http"`
	Logger Logger `mapstructure:"logger"`
	Store  Store  `mapstructure:"store"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.disable_caller", false)
	v.SetDefault("logger.disable_stacktrace", false)

	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.max_open_conns", 10)
	v.SetDefault("store.max_idle_conns", 5)
	v.SetDefault("store.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("store.auto_migrate", false)
}

// Load reads configuration from defaults, an optional YAML file and
// CATALOG_* environment variables, in increasing priority. A .env file in
// the working directory is loaded into the environment first when present.
// args are the command line arguments without the program name.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	configFile := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok && *configFile == "" {
		*configFile = env
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", *configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Logger.Development = cfg.Env == "development"

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr: required"))
	}
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn: required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	switch c.Logger.Encoding {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logger.encoding: must be json or console, got %q", c.Logger.Encoding))
	}
	if c.Store.MaxOpenConns < 0 || c.Store.MaxIdleConns < 0 {
		errs = append(errs, errors.New("store: connection limits must not be negative"))
	}

	if len(errs) != 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) Print() {
	template := `
	General:
	Env=%q

	HTTP:
	Addr=%q
	ReadHeaderTimeout=%s
	RequestTimeout=%s
	ShutdownTimeout=%s

	Logger:
	Level=%q
	Encoding=%q

	Store:
	Driver=%q
	MaxOpenConns=%d
	MaxIdleConns=%d
	ConnMaxLifetime=%s
	AutoMigrate=%t

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.Env,
		c.HTTP.Addr,
		c.HTTP.ReadHeaderTimeout,
		c.HTTP.RequestTimeout,
		c.HTTP.ShutdownTimeout,
		c.Logger.Level,
		c.Logger.Encoding,
		c.Store.Driver,
		c.Store.MaxOpenConns,
		c.Store.MaxIdleConns,
		c.Store.ConnMaxLifetime,
		c.Store.AutoMigrate,
	)
}
