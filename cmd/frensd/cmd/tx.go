package cmd

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"frensledger/x/issuance/types"
)

type txResult struct {
	Height int64      `json:"height"`
	Result any        `json:"result,omitempty"`
	Events sdk.Events `json:"events"`
}

type txRunFunc func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error)

// txCommand builds a subcommand that runs one committed invocation as --from.
func txCommand(v *viper.Viper, use, short string, nargs int, run txRunFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, v, func(s *session) error {
				from, err := s.caller()
				if err != nil {
					return err
				}
				now, err := s.cfg.BlockTime()
				if err != nil {
					return err
				}

				op := cmd.Name()
				var result any
				events, err := s.app.Exec(op, now, func(ctx sdk.Context) error {
					var err error
					result, err = run(ctx, s, from, args)
					return err
				})
				if err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				return printJSON(cmd, txResult{Height: s.app.LastBlockHeight(), Result: result, Events: events})
			})
		},
	}
	cmd.Flags().String(flagFrom, "", "hex account invoking the operation")
	return cmd
}

func newTxCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Ledger transactions",
	}
	cmd.AddCommand(
		txCommand(v, "giveaway [recipient] [amount]", "Issue frens outside any phase (owner or authorizer)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				recipient, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				amount, err := parseUint(args[1], "amount")
				if err != nil {
					return nil, err
				}
				return issuedRange(s.app.IssuanceKeeper.IssueGiveaway(ctx, from, recipient, amount))
			}),
		txCommand(v, "mint-signed [phase] [amount] [ceiling] [signature]", "Issue frens to --from with an allowlist signature", 4,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				phase, err := types.ParsePhase(args[0])
				if err != nil {
					return nil, err
				}
				amount, err := parseUint(args[1], "amount")
				if err != nil {
					return nil, err
				}
				ceiling, err := parseUint(args[2], "ceiling")
				if err != nil {
					return nil, err
				}
				sig, err := hexutil.Decode(args[3])
				if err != nil {
					return nil, fmt.Errorf("invalid signature: %w", err)
				}
				return issuedRange(s.app.IssuanceKeeper.IssueViaSignature(ctx, from, phase, amount, ceiling, sig))
			}),
		txCommand(v, "mint-public [amount]", "Issue frens to --from during the public phase", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				amount, err := parseUint(args[0], "amount")
				if err != nil {
					return nil, err
				}
				return issuedRange(s.app.IssuanceKeeper.IssuePublic(ctx, from, amount))
			}),
		txCommand(v, "redeem [start-id]", "Burn external tokens from start-id for tickets", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				start, err := parseUint(args[0], "start-id")
				if err != nil {
					return nil, err
				}
				credited, err := s.app.IssuanceKeeper.RedeemExternal(ctx, from, start)
				if err != nil {
					return nil, err
				}
				return map[string]uint64{"tickets": credited}, nil
			}),
		txCommand(v, "ticket-giveaway [recipient] [amount]", "Credit tickets directly (owner or authorizer)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				recipient, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				amount, err := parseUint(args[1], "amount")
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.IssueTicketGiveaway(ctx, from, recipient, amount)
			}),
		newTransferCmd(v),
		txCommand(v, "approve [operator] [approved]", "Allow or revoke an operator for all assets of --from", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				operator, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				approved, err := cast.ToBoolE(args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetApprovalForAll(ctx, from, operator, approved)
			}),
		txCommand(v, "configure-phase [phase] [start] [end]", "Set a phase window in unix seconds (owner or authorizer)", 3,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				phase, err := types.ParsePhase(args[0])
				if err != nil {
					return nil, err
				}
				start, err := cast.ToInt64E(args[1])
				if err != nil {
					return nil, fmt.Errorf("invalid start: %w", err)
				}
				end, err := cast.ToInt64E(args[2])
				if err != nil {
					return nil, fmt.Errorf("invalid end: %w", err)
				}
				return nil, s.app.IssuanceKeeper.ConfigurePhase(ctx, from, phase, start, end)
			}),
		txCommand(v, "set-signer [phase] [account]", "Designate the allowlist signer of a phase (owner)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				phase, err := types.ParsePhase(args[0])
				if err != nil {
					return nil, err
				}
				account, err := parseAccount(args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetSigner(ctx, from, phase, account)
			}),
		txCommand(v, "set-authorizer [account] [enabled]", "Grant or revoke the authorizer role (owner)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				enabled, err := cast.ToBoolE(args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetAuthorizer(ctx, from, account, enabled)
			}),
		txCommand(v, "transfer-ownership [new-owner]", "Hand the owner role to another account (owner)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.TransferOwnership(ctx, from, account)
			}),
		txCommand(v, "set-accrual-epoch [unix-seconds]", "Set the accrual start, 0 disables accrual (owner)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				epoch, err := cast.ToInt64E(args[0])
				if err != nil {
					return nil, fmt.Errorf("invalid epoch: %w", err)
				}
				return nil, s.app.IssuanceKeeper.SetAccrualEpoch(ctx, from, epoch)
			}),
		txCommand(v, "set-custodian [account]", "Name the account exempt from accrual resets (owner)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetCustodian(ctx, from, account)
			}),
		txCommand(v, "set-validity [id] [valid]", "Mark an asset valid or invalid (owner)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				valid, err := cast.ToBoolE(args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetAssetValidity(ctx, from, id, valid)
			}),
		txCommand(v, "set-base-uri [uri]", "Set the frens metadata base URI (owner)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				return nil, s.app.IssuanceKeeper.SetBaseURI(ctx, from, args[0])
			}),
		txCommand(v, "set-ticket-uri [uri]", "Set the ticket metadata URI (owner)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				return nil, s.app.IssuanceKeeper.SetTicketURI(ctx, from, args[0])
			}),
		txCommand(v, "set-royalty [receiver] [bps]", "Set the default frens royalty (owner)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				receiver, bps, err := parseRoyalty(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetDefaultRoyalty(ctx, from, receiver, bps)
			}),
		txCommand(v, "set-token-royalty [id] [receiver] [bps]", "Override the royalty of one frens id (owner)", 3,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				receiver, bps, err := parseRoyalty(args[1], args[2])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetTokenRoyalty(ctx, from, id, receiver, bps)
			}),
		txCommand(v, "set-ticket-royalty [receiver] [bps]", "Set the default ticket royalty (owner)", 2,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				receiver, bps, err := parseRoyalty(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetTicketDefaultRoyalty(ctx, from, receiver, bps)
			}),
		txCommand(v, "set-ticket-token-royalty [id] [receiver] [bps]", "Override the royalty of one ticket id (owner)", 3,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				receiver, bps, err := parseRoyalty(args[1], args[2])
				if err != nil {
					return nil, err
				}
				return nil, s.app.IssuanceKeeper.SetTicketTokenRoyalty(ctx, from, id, receiver, bps)
			}),
		newTransferTicketsCmd(v),
		txCommand(v, "reveal [ids]", "Burn legacy ids held by --from and issue frens under the same ids (comma separated)", 1,
			func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
				ids, err := parseIDs(args[0])
				if err != nil {
					return nil, err
				}
				if err := s.app.IssuanceKeeper.Reveal(ctx, from, ids); err != nil {
					return nil, err
				}
				return map[string][]uint64{"ids": ids}, nil
			}),
	)
	return cmd
}

func newTransferCmd(v *viper.Viper) *cobra.Command {
	cmd := txCommand(v, "transfer [to] [id]", "Transfer one asset; --owner sends on behalf of an approving holder", 2,
		func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
			to, err := parseAccount(args[0])
			if err != nil {
				return nil, err
			}
			id, err := parseUint(args[1], "id")
			if err != nil {
				return nil, err
			}
			holder, err := s.holder(from)
			if err != nil {
				return nil, err
			}
			return nil, s.app.IssuanceKeeper.Transfer(ctx, from, holder, to, id)
		})
	cmd.Flags().String(flagOwner, "", "current holder when --from acts as operator")
	return cmd
}

func newTransferTicketsCmd(v *viper.Viper) *cobra.Command {
	cmd := txCommand(v, "transfer-tickets [to] [amount]", "Transfer tickets; --owner sends on behalf of an approving holder", 2,
		func(ctx sdk.Context, s *session, from sdk.AccAddress, args []string) (any, error) {
			to, err := parseAccount(args[0])
			if err != nil {
				return nil, err
			}
			amount, err := parseUint(args[1], "amount")
			if err != nil {
				return nil, err
			}
			holder, err := s.holder(from)
			if err != nil {
				return nil, err
			}
			return nil, s.app.IssuanceKeeper.TransferTickets(ctx, from, holder, to, amount)
		})
	cmd.Flags().String(flagOwner, "", "current holder when --from acts as operator")
	return cmd
}

func issuedRange(first uint64, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]uint64{"first_id": first}, nil
}

func parseAccount(raw string) (sdk.AccAddress, error) {
	addr, err := types.AccountFromHex(raw)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func parseRoyalty(rawReceiver, rawBps string) (sdk.AccAddress, uint32, error) {
	receiver, err := parseAccount(rawReceiver)
	if err != nil {
		return nil, 0, err
	}
	bps, err := cast.ToUint32E(rawBps)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid bps: %w", err)
	}
	return receiver, bps, nil
}

func parseIDs(raw string) ([]uint64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := parseUint(strings.TrimSpace(p), "id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseUint(raw, name string) (uint64, error) {
	v, err := cast.ToUint64E(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}
