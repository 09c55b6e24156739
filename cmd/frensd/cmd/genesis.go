package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"frensledger/app"
	"frensledger/x/issuance/types"
)

func newInitCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init [genesis-file]",
		Short: "Create the ledger home and load genesis as height 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := app.ReadGenesisFile(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, v, func(s *session) error {
				if err := writeDefaultConfig(s.cfg.Home); err != nil {
					return err
				}
				if gs.GenesisTime.IsZero() {
					if gs.GenesisTime, err = s.cfg.BlockTime(); err != nil {
						return err
					}
				}
				if err := s.app.InitChain(gs); err != nil {
					return fmt.Errorf("init chain: %w", err)
				}
				s.logger.Info("ledger initialized", "home", s.cfg.Home, "assets", len(gs.Issuance.Assets))
				return nil
			})
		},
	}
}

func newGenesisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Genesis file helpers",
	}
	cmd.AddCommand(
		newGenesisDefaultCmd(),
		newGenesisValidateCmd(),
		newGenesisExportCmd(v),
	)
	return cmd
}

func newGenesisDefaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default [owner]",
		Short: "Print a default genesis owned by owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := types.AccountFromHex(args[0])
			if err != nil {
				return err
			}
			gs := app.NewDefaultGenesisState()
			gs.Issuance.Owner = types.AccountHex(owner)

			out, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			if out != "" {
				return app.WriteGenesisFile(out, gs)
			}
			return printJSON(cmd, gs)
		},
	}
	cmd.Flags().String("output", "", "write to this file instead of stdout")
	return cmd
}

func newGenesisValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis-file]",
		Short: "Check a genesis file without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := app.ReadGenesisFile(args[0])
			if err != nil {
				return err
			}
			if err := gs.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return err
		},
	}
}

func newGenesisExportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the committed state as genesis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, v, func(s *session) error {
				now, err := s.cfg.BlockTime()
				if err != nil {
					return err
				}
				gs, err := s.app.ExportGenesis(now)
				if err != nil {
					return err
				}
				return printJSON(cmd, gs)
			})
		},
	}
}
