package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	issuancekeeper "frensledger/x/issuance/keeper"
	issuancetypes "frensledger/x/issuance/types"
)

const OpInitChain = "init_chain"

// GenesisState is the full ledger state: the issuance module, the external
// collection it redeems and the legacy collection it reveals.
type GenesisState struct {
	GenesisTime time.Time                          `json:"genesis_time"`
	Issuance    issuancetypes.GenesisState         `json:"issuance"`
	External    issuancetypes.ExternalGenesisState `json:"external"`
	Legacy      issuancetypes.ExternalGenesisState `json:"legacy"`
}

func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		Issuance: *issuancetypes.DefaultGenesis(),
		External: issuancetypes.ExternalGenesisState{Holdings: []issuancetypes.ExternalHolding{}},
		Legacy:   issuancetypes.ExternalGenesisState{Holdings: []issuancetypes.ExternalHolding{}},
	}
}

func (gs GenesisState) Validate() error {
	if err := gs.Issuance.Validate(); err != nil {
		return fmt.Errorf("issuance genesis: %w", err)
	}
	if err := gs.External.Validate(); err != nil {
		return fmt.Errorf("external genesis: %w", err)
	}
	if err := gs.Legacy.Validate(); err != nil {
		return fmt.Errorf("legacy genesis: %w", err)
	}
	return nil
}

func ReadGenesisFile(path string) (GenesisState, error) {
	var gs GenesisState
	bz, err := os.ReadFile(path)
	if err != nil {
		return gs, err
	}
	if err := json.Unmarshal(bz, &gs); err != nil {
		return gs, fmt.Errorf("parse %s: %w", path, err)
	}
	return gs, nil
}

func WriteGenesisFile(path string, gs GenesisState) error {
	bz, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}

// InitChain loads genesis into an empty store and commits it as height 1.
func (app *App) InitChain(gs GenesisState) error {
	if app.LastBlockHeight() != 0 {
		return ErrAlreadyInitialized
	}
	if err := gs.Validate(); err != nil {
		return err
	}
	_, err := app.Exec(OpInitChain, gs.GenesisTime, func(ctx sdk.Context) error {
		if err := app.IssuanceKeeper.InitGenesis(ctx, gs.Issuance); err != nil {
			return err
		}
		if err := issuancekeeper.InitExternalGenesis(ctx, app.External, gs.External); err != nil {
			return err
		}
		return issuancekeeper.InitExternalGenesis(ctx, app.Legacy, gs.Legacy)
	})
	return err
}

func (app *App) ExportGenesis(blockTime time.Time) (GenesisState, error) {
	gs := GenesisState{GenesisTime: blockTime.UTC()}
	err := app.Query(blockTime, func(ctx sdk.Context) error {
		issuance, err := app.IssuanceKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		external, err := issuancekeeper.ExportExternalGenesis(ctx, app.External)
		if err != nil {
			return err
		}
		legacy, err := issuancekeeper.ExportExternalGenesis(ctx, app.Legacy)
		if err != nil {
			return err
		}
		gs.Issuance = *issuance
		gs.External = *external
		gs.Legacy = *legacy
		return nil
	})
	return gs, err
}
