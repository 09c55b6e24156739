package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	owner, err := types.AccountFromHex(genState.Owner)
	if err != nil {
		return err
	}
	if err := k.Owner.Set(ctx, owner); err != nil {
		return err
	}
	for _, a := range genState.Authorizers {
		addr, err := types.AccountFromHex(a)
		if err != nil {
			return err
		}
		if err := k.Authorizers.Set(ctx, addr); err != nil {
			return err
		}
	}

	for _, pc := range genState.Phases {
		if err := k.Phases.Set(ctx, pc.Phase, pc.Window); err != nil {
			return err
		}
	}
	for _, s := range genState.Signers {
		addr, err := types.AccountFromHex(s.Account)
		if err != nil {
			return err
		}
		if err := k.Signers.Set(ctx, s.Phase.String(), addr); err != nil {
			return err
		}
	}

	for _, a := range genState.Assets {
		addr, err := types.AccountFromHex(a.Owner)
		if err != nil {
			return err
		}
		if err := k.Assets.Mint(ctx, a.ID, addr); err != nil {
			return err
		}
		if a.Invalid {
			if err := k.Assets.Invalid.Set(ctx, a.ID); err != nil {
				return err
			}
		}
		if err := k.Accrual.LastReset.Set(ctx, a.ID, a.LastReset); err != nil {
			return err
		}
	}
	if err := k.Supply.Issued.Set(ctx, string(types.ClassFrens), uint64(len(genState.Assets))); err != nil {
		return err
	}

	for _, op := range genState.Operators {
		holder, err := types.AccountFromHex(op.Owner)
		if err != nil {
			return err
		}
		operator, err := types.AccountFromHex(op.Operator)
		if err != nil {
			return err
		}
		if err := k.Assets.SetApprovalForAll(ctx, holder, operator, true); err != nil {
			return err
		}
	}

	for _, q := range genState.Quotas {
		addr, err := types.AccountFromHex(q.Recipient)
		if err != nil {
			return err
		}
		if err := k.Quota.Minted.Set(ctx, collections.Join(addr, q.Phase.String()), q.Minted); err != nil {
			return err
		}
	}

	var tickets uint64
	for _, tb := range genState.TicketBalances {
		addr, err := types.AccountFromHex(tb.Account)
		if err != nil {
			return err
		}
		if err := k.TicketBalances.Set(ctx, addr, tb.Amount); err != nil {
			return err
		}
		tickets += tb.Amount
	}
	if err := k.Supply.Issued.Set(ctx, string(types.ClassTicket), tickets); err != nil {
		return err
	}
	for _, r := range genState.Redeemed {
		addr, err := types.AccountFromHex(r)
		if err != nil {
			return err
		}
		if err := k.Redeemed.Set(ctx, addr); err != nil {
			return err
		}
	}

	if err := k.Accrual.Epoch.Set(ctx, genState.AccrualEpoch); err != nil {
		return err
	}
	if genState.Custodian != "" {
		custodian, err := types.AccountFromHex(genState.Custodian)
		if err != nil {
			return err
		}
		if err := k.Accrual.Custodian.Set(ctx, custodian); err != nil {
			return err
		}
	}

	if err := k.BaseURI.Set(ctx, genState.BaseURI); err != nil {
		return err
	}
	if err := k.TicketURI.Set(ctx, genState.TicketURI); err != nil {
		return err
	}

	if err := k.Royalty.Import(ctx, owner, genState.DefaultRoyalty, genState.TokenRoyalties); err != nil {
		return err
	}
	if err := k.TicketRoyalty.Import(ctx, owner, genState.TicketDefaultRoyalty, genState.TicketTokenRoyalties); err != nil {
		return err
	}

	k.Logger(ctx).Info("issuance genesis loaded", "assets", len(genState.Assets), "tickets", tickets)
	return nil
}

func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	genesis.Params = k.GetParams(ctx)

	owner, err := k.GetOwner(ctx)
	if err != nil {
		return nil, err
	}
	genesis.Owner = types.AccountHex(owner)

	err = k.Authorizers.Walk(ctx, nil, func(addr sdk.AccAddress) (bool, error) {
		genesis.Authorizers = append(genesis.Authorizers, types.AccountHex(addr))
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	for _, phase := range types.AllPhases() {
		w, err := k.Phases.Window(ctx, phase)
		if err != nil {
			return nil, err
		}
		if w.IsSet() {
			genesis.Phases = append(genesis.Phases, types.PhaseConfig{Phase: phase, Window: w})
		}
		if !phase.IsSigned() {
			continue
		}
		signer, err := k.Signer(ctx, phase)
		if err != nil {
			return nil, err
		}
		if !types.IsZeroAccount(signer) {
			genesis.Signers = append(genesis.Signers, types.SignerEntry{Phase: phase, Account: types.AccountHex(signer)})
		}
	}

	err = k.Assets.WalkAssets(ctx, func(id uint64, holder sdk.AccAddress) error {
		invalid, err := k.Assets.Invalid.Has(ctx, id)
		if err != nil {
			return err
		}
		last, err := k.Accrual.LastReset.Get(ctx, id)
		if err != nil {
			return err
		}
		genesis.Assets = append(genesis.Assets, types.Asset{
			ID:        id,
			Owner:     types.AccountHex(holder),
			Invalid:   invalid,
			LastReset: last,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Assets.Operators.Walk(ctx, nil, func(key collections.Pair[sdk.AccAddress, sdk.AccAddress]) (bool, error) {
		genesis.Operators = append(genesis.Operators, types.OperatorApproval{
			Owner:    types.AccountHex(key.K1()),
			Operator: types.AccountHex(key.K2()),
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Quota.Minted.Walk(ctx, nil, func(key collections.Pair[sdk.AccAddress, string], minted uint64) (bool, error) {
		phase, err := types.ParsePhase(key.K2())
		if err != nil {
			return true, err
		}
		genesis.Quotas = append(genesis.Quotas, types.QuotaEntry{
			Recipient: types.AccountHex(key.K1()),
			Phase:     phase,
			Minted:    minted,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.TicketBalances.Walk(ctx, nil, func(addr sdk.AccAddress, amount uint64) (bool, error) {
		genesis.TicketBalances = append(genesis.TicketBalances, types.TicketBalance{Account: types.AccountHex(addr), Amount: amount})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.Redeemed.Walk(ctx, nil, func(addr sdk.AccAddress) (bool, error) {
		genesis.Redeemed = append(genesis.Redeemed, types.AccountHex(addr))
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if genesis.AccrualEpoch, err = k.AccrualEpoch(ctx); err != nil {
		return nil, err
	}
	custodian, err := k.GetCustodian(ctx)
	if err != nil {
		return nil, err
	}
	genesis.Custodian = types.AccountHex(custodian)

	if genesis.BaseURI, err = getOrZero(ctx, k.BaseURI); err != nil {
		return nil, err
	}
	if genesis.TicketURI, err = getOrZero(ctx, k.TicketURI); err != nil {
		return nil, err
	}
	if genesis.DefaultRoyalty, genesis.TokenRoyalties, err = k.Royalty.Export(ctx); err != nil {
		return nil, err
	}
	if genesis.TicketDefaultRoyalty, genesis.TicketTokenRoyalties, err = k.TicketRoyalty.Export(ctx); err != nil {
		return nil, err
	}

	return genesis, nil
}

// InitExternalGenesis seeds a registry built with NewExternalRegistry or
// NewLegacyRegistry.
func InitExternalGenesis(ctx context.Context, r *OwnershipRegistry, genState types.ExternalGenesisState) error {
	if err := genState.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}
	for _, h := range genState.Holdings {
		addr, err := types.AccountFromHex(h.Owner)
		if err != nil {
			return err
		}
		if err := r.Mint(ctx, h.ID, addr); err != nil {
			return err
		}
	}
	return nil
}

func ExportExternalGenesis(ctx context.Context, r *OwnershipRegistry) (*types.ExternalGenesisState, error) {
	genesis := &types.ExternalGenesisState{Holdings: []types.ExternalHolding{}}
	err := r.WalkAssets(ctx, func(id uint64, holder sdk.AccAddress) error {
		genesis.Holdings = append(genesis.Holdings, types.ExternalHolding{ID: id, Owner: types.AccountHex(holder)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return genesis, nil
}
