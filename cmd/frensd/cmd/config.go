package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"frensledger/app"
)

const (
	flagHome            = "home"
	flagLogLevel        = "log-level"
	flagDBBackend       = "db-backend"
	flagTime            = "time"
	flagFrom            = "from"
	flagOwner           = "owner"
	flagMetricsTextfile = "metrics-textfile"
)

// Config is the resolved CLI configuration. Precedence is flag, then
// FRENSD_* environment, then <home>/config/frensd.toml, then defaults.
type Config struct {
	Home            string
	LogLevel        string
	DBBackend       string
	Time            string
	From            string
	Owner           string
	MetricsTextfile string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(app.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(flagHome, app.DefaultNodeHome)
	v.SetDefault(flagLogLevel, "info")
	v.SetDefault(flagDBBackend, "goleveldb")
	return v
}

// loadConfig binds the command's flags and merges the optional config file.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (Config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}

	home := cast.ToString(v.Get(flagHome))
	v.SetConfigName("frensd")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(home, "config"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Home:            home,
		LogLevel:        cast.ToString(v.Get(flagLogLevel)),
		DBBackend:       cast.ToString(v.Get(flagDBBackend)),
		Time:            cast.ToString(v.Get(flagTime)),
		From:            cast.ToString(v.Get(flagFrom)),
		Owner:           cast.ToString(v.Get(flagOwner)),
		MetricsTextfile: cast.ToString(v.Get(flagMetricsTextfile)),
	}, nil
}

func (c Config) DataDir() string { return filepath.Join(c.Home, "data") }

// BlockTime is --time as unix seconds or RFC3339, or the wall clock when
// unset.
func (c Config) BlockTime() (time.Time, error) {
	raw := strings.TrimSpace(c.Time)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if secs, err := cast.ToInt64E(raw); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time %q: %w", raw, err)
	}
	return t.UTC(), nil
}

const defaultConfigTemplate = `# frensd configuration; every key can be overridden by a FRENSD_* variable.
log-level = "info"
db-backend = "goleveldb"
# time = "2024-01-01T00:00:00Z"
# metrics-textfile = "/var/lib/node_exporter/frensd.prom"
`

func writeDefaultConfig(home string) error {
	dir := filepath.Join(home, "config")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, "frensd.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(defaultConfigTemplate), 0o644)
}
