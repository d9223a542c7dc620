package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/webriots/cotoolz"
)

var Version string

const (
	configF    = "config"
	separatorF = "separator"
	logLevelF  = "log-level"
	opF        = "op"

	defaultConfig    = ""
	defaultSeparator = "\t"
	defaultLogLevel  = "info"
	defaultOp        = "concat"

	envPrefix = "COTOOLZ"

	configUsage    = "The yaml configuration file."
	separatorUsage = "Separator placed between the fields of an output line."
	logLevelUsage  = `Verbosity of the logs. Options:
debug, info, warn, error`
	opUsage = `Operation applied across corresponding lines. Options:
concat = join the lines with the separator
sum    = add the lines as integers
max    = largest of the lines as integers`
)

// Config is the merged configuration of a command run: flags override
// COTOOLZ_* environment variables, which override the config file.
type Config struct {
	Separator string `mapstructure:"separator"`
	LogLevel  string `mapstructure:"log-level"`
	Op        string `mapstructure:"op"`
}

func NewCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cotoolz",
		Short:         "Zip and map line streams with coroutine-aware combinators.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(ZipCmd(), MapCmd())
	return rootCmd
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(configF, defaultConfig, configUsage)
	fs.String(separatorF, defaultSeparator, separatorUsage)
	fs.String(logLevelF, defaultLogLevel, logLevelUsage)
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString(configF); cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// setup loads the configuration and installs the logger, which the
// library shares for its debug output.
func setup(cmd *cobra.Command) (*Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	cotoolz.SetLogger(log)
	return cfg, log, nil
}
