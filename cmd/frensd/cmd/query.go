package cmd

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"frensledger/x/issuance/types"
)

type queryRunFunc func(ctx sdk.Context, s *session, args []string) (any, error)

func queryCommand(v *viper.Viper, use, short string, nargs int, run queryRunFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, v, func(s *session) error {
				now, err := s.cfg.BlockTime()
				if err != nil {
					return err
				}
				var out any
				err = s.app.Query(now, func(ctx sdk.Context) error {
					var err error
					out, err = run(ctx, s, args)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
}

func newQueryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Read committed ledger state",
	}

	tokens := queryCommand(v, "tokens-of [owner]", "List ids held by owner in issuance order", 1,
		func(ctx sdk.Context, s *session, args []string) (any, error) {
			owner, err := parseAccount(args[0])
			if err != nil {
				return nil, err
			}
			start := cast.ToUint64(s.v.Get("start"))
			count := cast.ToUint64(s.v.Get("count"))
			return s.app.IssuanceKeeper.TokensOfOwner(ctx, owner, start, count)
		})
	tokens.Flags().Uint64("start", 0, "index of the first id to return")
	tokens.Flags().Uint64("count", 100, "maximum number of ids to return")

	cmd.AddCommand(
		queryCommand(v, "params", "Issuance ceilings", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				return s.app.IssuanceKeeper.GetParams(ctx), nil
			}),
		queryCommand(v, "owner", "Current owner account", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				owner, err := s.app.IssuanceKeeper.GetOwner(ctx)
				return types.AccountHex(owner), err
			}),
		queryCommand(v, "is-authorizer [account]", "Whether account holds the authorizer role", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.IsAuthorizer(ctx, account)
			}),
		queryCommand(v, "balance [owner]", "Number of frens held by owner", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				owner, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.BalanceOf(ctx, owner)
			}),
		queryCommand(v, "total", "Number of frens issued", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				return s.app.IssuanceKeeper.TotalIssued(ctx)
			}),
		queryCommand(v, "owner-of [id]", "Holder of an asset", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				owner, err := s.app.IssuanceKeeper.OwnerOf(ctx, id)
				return types.AccountHex(owner), err
			}),
		tokens,
		queryCommand(v, "is-valid [id]", "Whether an asset may be transferred", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.IsValid(ctx, id)
			}),
		queryCommand(v, "accrued [id]", "Accrued seconds of an asset at --time", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.Accrued(ctx, id)
			}),
		queryCommand(v, "accrued-by-owner [owner]", "Accrued seconds of every asset held by owner", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				owner, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.AccruedByOwner(ctx, owner, ctx.BlockTime().Unix())
			}),
		queryCommand(v, "accrual", "Accrual epoch and custodian", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				epoch, err := s.app.IssuanceKeeper.AccrualEpoch(ctx)
				if err != nil {
					return nil, err
				}
				custodian, err := s.app.IssuanceKeeper.GetCustodian(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]any{"epoch": epoch, "custodian": types.AccountHex(custodian)}, nil
			}),
		queryCommand(v, "phase [phase]", "Window of a phase and whether it is open at --time", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				phase, err := types.ParsePhase(args[0])
				if err != nil {
					return nil, err
				}
				w, err := s.app.IssuanceKeeper.Phase(ctx, phase)
				if err != nil {
					return nil, err
				}
				return map[string]any{"phase": phase, "start": w.Start, "end": w.End, "active": w.IsActive(ctx.BlockTime().Unix())}, nil
			}),
		queryCommand(v, "signer [phase]", "Designated signer of a phase", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				phase, err := types.ParsePhase(args[0])
				if err != nil {
					return nil, err
				}
				signer, err := s.app.IssuanceKeeper.Signer(ctx, phase)
				return types.AccountHex(signer), err
			}),
		queryCommand(v, "minted [account] [phase]", "Cumulative amount issued to account in a phase", 2,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				phase, err := types.ParsePhase(args[1])
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.Minted(ctx, account, phase)
			}),
		queryCommand(v, "token-uri [id]", "Metadata URI of an asset", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				return s.app.IssuanceKeeper.TokenURI(ctx, id)
			}),
		queryCommand(v, "ticket-uri", "Metadata URI shared by tickets", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				return s.app.IssuanceKeeper.GetTicketURI(ctx)
			}),
		queryCommand(v, "royalty [id] [sale-price]", "Frens royalty receiver and amount for a sale", 2,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				return royaltyQuery(args, func(id uint64, price sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error) {
					return s.app.IssuanceKeeper.RoyaltyInfo(ctx, id, price)
				})
			}),
		queryCommand(v, "ticket-royalty [id] [sale-price]", "Ticket royalty receiver and amount for a sale", 2,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				return royaltyQuery(args, func(id uint64, price sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error) {
					return s.app.IssuanceKeeper.TicketRoyaltyInfo(ctx, id, price)
				})
			}),
		queryCommand(v, "tickets [account]", "Ticket balance and redemption status of account", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				account, err := parseAccount(args[0])
				if err != nil {
					return nil, err
				}
				bal, err := s.app.IssuanceKeeper.TicketBalance(ctx, account)
				if err != nil {
					return nil, err
				}
				redeemed, err := s.app.IssuanceKeeper.HasRedeemed(ctx, account)
				if err != nil {
					return nil, err
				}
				return map[string]any{"balance": bal, "redeemed": redeemed}, nil
			}),
		queryCommand(v, "tickets-issued", "Number of tickets issued", 0,
			func(ctx sdk.Context, s *session, _ []string) (any, error) {
				return s.app.IssuanceKeeper.TicketsIssued(ctx)
			}),
		queryCommand(v, "external-owner [id]", "Holder of an external token", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				owner, err := s.app.External.OwnerOf(ctx, id)
				return types.AccountHex(owner), err
			}),
		queryCommand(v, "legacy-owner [id]", "Holder of a legacy token awaiting reveal", 1,
			func(ctx sdk.Context, s *session, args []string) (any, error) {
				id, err := parseUint(args[0], "id")
				if err != nil {
					return nil, err
				}
				owner, err := s.app.Legacy.OwnerOf(ctx, id)
				return types.AccountHex(owner), err
			}),
	)
	return cmd
}

func royaltyQuery(args []string, info func(id uint64, price sdkmath.Int) (sdk.AccAddress, sdkmath.Int, error)) (any, error) {
	id, err := parseUint(args[0], "id")
	if err != nil {
		return nil, err
	}
	price, ok := sdkmath.NewIntFromString(args[1])
	if !ok || price.IsNegative() {
		return nil, fmt.Errorf("invalid sale price %q", args[1])
	}
	receiver, amount, err := info(id, price)
	if err != nil {
		return nil, err
	}
	return map[string]string{"receiver": types.AccountHex(receiver), "amount": amount.String()}, nil
}
