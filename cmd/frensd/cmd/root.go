package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"frensledger/app"
	"frensledger/app/metrics"
	"frensledger/x/issuance/types"
)

func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:           app.Name + "d",
		Short:         "frens issuance ledger",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	addGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(
		newInitCmd(v),
		newGenesisCmd(v),
		newTxCmd(v),
		newQueryCmd(v),
		newKeysCmd(v),
	)
	return rootCmd
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.String(flagHome, app.DefaultNodeHome, "ledger home directory")
	pf.String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	pf.String(flagDBBackend, string(dbm.GoLevelDBBackend), "database backend (goleveldb|memdb)")
	pf.String(flagTime, "", "invocation time as unix seconds or RFC3339 (default now)")
	pf.String(flagMetricsTextfile, "", "write prometheus metrics to this file after the command")
}

// session is one opened ledger for the duration of a command.
type session struct {
	cfg    Config
	v      *viper.Viper
	logger log.Logger
	app    *app.App
}

func openSession(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flagLogLevel, err)
	}
	logger := log.NewLogger(cmd.ErrOrStderr(), log.LevelOption(level))

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB(app.Name, dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	ledger, err := app.New(logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &session{cfg: cfg, v: v, logger: logger, app: ledger}, nil
}

func (s *session) Close() error {
	if s.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsTextfile); err != nil {
			s.logger.Error("failed to write metrics", "path", s.cfg.MetricsTextfile, "err", err)
		}
	}
	return s.app.Close()
}

// withSession opens the ledger, runs fn and always closes it.
func withSession(cmd *cobra.Command, v *viper.Viper, fn func(s *session) error) (err error) {
	s, err := openSession(cmd, v)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func (s *session) caller() (sdk.AccAddress, error) {
	if s.cfg.From == "" {
		return nil, fmt.Errorf("--%s is required", flagFrom)
	}
	addr, err := types.AccountFromHex(s.cfg.From)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flagFrom, err)
	}
	return addr, nil
}

// holder is the account an operator acts for: --owner when set, else from.
func (s *session) holder(from sdk.AccAddress) (sdk.AccAddress, error) {
	if s.cfg.Owner == "" {
		return from, nil
	}
	addr, err := types.AccountFromHex(s.cfg.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flagOwner, err)
	}
	return addr, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
