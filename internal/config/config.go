// Package config loads seatplan settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/seatplan/config.toml (or
// ~/.config/seatplan/config.toml). A missing file is not an error; every
// setting has a default:
//
//	[names]
//	person_delimiter = ";"
//	name_delimiter = ","
//	lock_tag = "#"
//
//	[solver]
//	max_steps = 200000
//	reshuffle_probability = 0.2
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "720h"
//
//	[store]
//	backend = "file"   # file or mongo
//
//	[server]
//	addr = ":8080"
//
// Environment variables override the file: SEATPLAN_CACHE_BACKEND,
// REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, MONGO_URI, SEATPLAN_ADDR.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

const appName = "seatplan"

// Backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
	BackendMongo = "mongo"
)

// Config is the complete configuration.
type Config struct {
	Names  NamesConfig  `toml:"names"`
	Solver SolverConfig `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// NamesConfig holds the roster delimiters.
type NamesConfig struct {
	PersonDelimiter string `toml:"person_delimiter"`
	NameDelimiter   string `toml:"name_delimiter"`
	LockTag         string `toml:"lock_tag"`
}

// SolverConfig holds search limits.
type SolverConfig struct {
	MaxSteps             int     `toml:"max_steps"`
	ReshuffleProbability float64 `toml:"reshuffle_probability"`
}

// CacheConfig selects where assignment results are kept.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	TTL           string `toml:"ttl"`
	Prefix        string `toml:"prefix"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisTLS      bool   `toml:"redis_tls"`
}

// StoreConfig selects where charts are kept.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Names: NamesConfig{
			PersonDelimiter: string(roster.DefaultPersonDelimiter),
			NameDelimiter:   string(roster.DefaultNameDelimiter),
			LockTag:         roster.DefaultLockTag,
		},
		Solver: SolverConfig{
			MaxSteps:             seating.DefaultMaxSteps,
			ReshuffleProbability: seating.DefaultReshuffleProbability,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       cache.TTLAssignment.String(),
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:         BackendFile,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "charts",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path uses [Path]; a missing
// default file is ignored, a missing explicit file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults without reading the environment.
func Decode(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SEATPLAN_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "REDIS_DB")
		}
		c.Cache.RedisDB = n
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("SEATPLAN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks enums, delimiters and limits.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none (got %q)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "store.backend must be file or mongo (got %q)", c.Store.Backend)
	}

	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	if c.Solver.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "solver.max_steps must not be negative")
	}
	if c.Solver.ReshuffleProbability > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "solver.reshuffle_probability must be at most 1")
	}

	opts, err := c.Names.Options()
	if err != nil {
		return err
	}
	return errors.ValidateDelimiters(opts.PersonDelimiter, opts.NameDelimiter, opts.LockTag)
}

// Options converts the delimiters to parser options.
func (n NamesConfig) Options() (roster.Options, error) {
	person, err := singleRune("names.person_delimiter", n.PersonDelimiter)
	if err != nil {
		return roster.Options{}, err
	}
	name, err := singleRune("names.name_delimiter", n.NameDelimiter)
	if err != nil {
		return roster.Options{}, err
	}
	return roster.Options{PersonDelimiter: person, NameDelimiter: name, LockTag: n.LockTag}, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a single character (got %q)", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// TTLDuration parses the cache TTL. An empty TTL means entries never expire.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must be a duration such as 720h (got %q)", c.TTL)
	}
	return d, nil
}
