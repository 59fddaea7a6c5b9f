// Package config loads the command line tool's settings from defaults,
// an optional file, BIGM_* environment variables and flags, in rising priority.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"q.log/bigm/logging"
	"q.log/bigm/simplex"
)

type Config struct {
	Solver  SolverConfig `mapstructure:"solver"`
	Log     LogConfig    `mapstructure:"log"`
	Report  ReportConfig `mapstructure:"report"`
	Workers int          `mapstructure:"workers" validate:"min=1,max=64"`
}

type SolverConfig struct {
	MaxIterations int     `mapstructure:"max_iterations" validate:"min=1"`
	Epsilon       float64 `mapstructure:"epsilon"        validate:"gt=0,lt=1"`
	BigM          float64 `mapstructure:"big_m"          validate:"gt=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"min=0"`
	Compress   bool   `mapstructure:"compress"`
}

type ReportConfig struct {
	Format    string `mapstructure:"format"    validate:"oneof=text csv"`
	Output    string `mapstructure:"output"`
	Plot      string `mapstructure:"plot"`
	Precision int32  `mapstructure:"precision" validate:"min=0,max=12"`
}

// flagKeys binds command line flags to configuration keys.
var flagKeys = map[string]string{
	"max-iterations": "solver.max_iterations",
	"epsilon":        "solver.epsilon",
	"big-m":          "solver.big_m",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"format":         "report.format",
	"output":         "report.output",
	"plot":           "report.plot",
	"precision":      "report.precision",
	"workers":        "workers",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.max_iterations", simplex.DefaultMaxIterations)
	v.SetDefault("solver.epsilon", simplex.DefaultEpsilon)
	v.SetDefault("solver.big_m", simplex.DefaultBigM)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "")
	v.SetDefault("report.plot", "")
	v.SetDefault("report.precision", 4)
	v.SetDefault("workers", 4)
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("max-iterations", simplex.DefaultMaxIterations, "pivot limit per solve")
	fs.Float64("epsilon", simplex.DefaultEpsilon, "numerical tolerance")
	fs.Float64("big-m", simplex.DefaultBigM, "cost of artificial variables")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-file", "", "write JSON logs to this file instead of stderr")
	fs.String("format", "text", "report format: text or csv")
	fs.StringP("output", "o", "", "report file (default stdout)")
	fs.String("plot", "", "save the objective convergence chart to this image file")
	fs.Int32("precision", 4, "decimal places in reports")
	fs.IntP("workers", "j", 4, "problems solved concurrently")
}

// Load builds the configuration. path and flags may be empty/nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BIGM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "config: bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: validate")
	}
	return &cfg, nil
}

// SolverOptions converts the solver section into simplex options.
func (c *Config) SolverOptions() []simplex.Option {
	return []simplex.Option{
		simplex.WithMaxIterations(c.Solver.MaxIterations),
		simplex.WithEpsilon(c.Solver.Epsilon),
		simplex.WithBigM(c.Solver.BigM),
	}
}

// Logging converts the log section for logging.New.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
