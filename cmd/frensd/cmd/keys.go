package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"frensledger/x/issuance/signing"
)

const flagSignerKey = "signer-key"

func newKeysCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "secp256k1 key and allowance signature helpers",
	}
	cmd.AddCommand(
		newKeysGenerateCmd(),
		newKeysSignAllowanceCmd(v),
		newKeysRecoverCmd(),
	)
	return cmd
}

func newKeysGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Create a new secp256k1 key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{
				"address":     crypto.PubkeyToAddress(key.PublicKey).Hex(),
				"private_key": hexutil.Encode(crypto.FromECDSA(key)),
			})
		},
	}
}

func newKeysSignAllowanceCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign-allowance [recipient] [ceiling]",
		Short: "Sign an allowlist ceiling for recipient",
		Long:  "Sign an allowlist ceiling for recipient. The key is read from --signer-key or FRENSD_SIGNER_KEY.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			raw := strings.TrimPrefix(cast.ToString(v.Get(flagSignerKey)), "0x")
			if raw == "" {
				return fmt.Errorf("--%s is required", flagSignerKey)
			}
			key, err := crypto.HexToECDSA(raw)
			if err != nil {
				return fmt.Errorf("invalid signer key: %w", err)
			}
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid recipient %q", args[0])
			}
			ceiling, err := parseUint(args[1], "ceiling")
			if err != nil {
				return err
			}

			recipient := common.HexToAddress(args[0])
			sig, err := signing.SignAllowance(key, recipient, ceiling)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"signer":    crypto.PubkeyToAddress(key.PublicKey).Hex(),
				"recipient": recipient.Hex(),
				"ceiling":   ceiling,
				"signature": hexutil.Encode(sig),
			})
		},
	}
	cmd.Flags().String(flagSignerKey, "", "hex secp256k1 private key of the phase signer")
	return cmd
}

func newKeysRecoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover [recipient] [ceiling] [signature]",
		Short: "Recover the account that signed an allowance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid recipient %q", args[0])
			}
			ceiling, err := parseUint(args[1], "ceiling")
			if err != nil {
				return err
			}
			sig, err := hexutil.Decode(args[2])
			if err != nil {
				return fmt.Errorf("invalid signature: %w", err)
			}
			signer, err := signing.RecoverSigner(common.HexToAddress(args[0]), ceiling, sig)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signer.Hex())
			return err
		},
	}
}
