package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/x/issuance/types"
)

// PhaseController stores one time window per phase.
type PhaseController struct {
	Windows collections.Map[string, types.PhaseWindow]
}

func NewPhaseController(sb *collections.SchemaBuilder) PhaseController {
	return PhaseController{
		Windows: collections.NewMap(sb, types.PhaseKey, "phases", collections.StringKey, types.JSONValue[types.PhaseWindow]("phase_window")),
	}
}

// Window returns the configured window, or the unset zero window.
func (pc PhaseController) Window(ctx context.Context, phase types.Phase) (types.PhaseWindow, error) {
	w, err := pc.Windows.Get(ctx, phase.String())
	if errors.Is(err, collections.ErrNotFound) {
		return types.PhaseWindow{}, nil
	}
	return w, err
}

func (pc PhaseController) Set(ctx context.Context, phase types.Phase, w types.PhaseWindow) error {
	if !phase.IsValid() {
		return errorsmod.Wrapf(types.ErrInvalidInput, "unknown phase %d", int32(phase))
	}
	if err := w.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}
	return pc.Windows.Set(ctx, phase.String(), w)
}

// RequireActive fails with ErrInvalidTime unless phase is open at now.
func (pc PhaseController) RequireActive(ctx context.Context, phase types.Phase, now int64) error {
	w, err := pc.Window(ctx, phase)
	if err != nil {
		return err
	}
	if !w.IsActive(now) {
		return errorsmod.Wrapf(types.ErrInvalidTime, "%s phase is not active at %d", phase, now)
	}
	return nil
}

// ConfigurePhase replaces the window of phase. Owner or authorizer.
func (k Keeper) ConfigurePhase(ctx context.Context, caller sdk.AccAddress, phase types.Phase, start, end int64) error {
	if err := k.requireOwnerOrAuthorizer(ctx, caller); err != nil {
		return err
	}
	if err := k.Phases.Set(ctx, phase, types.PhaseWindow{Start: start, End: end}); err != nil {
		return err
	}

	k.Logger(ctx).Info("phase configured", "phase", phase.String(), "start", start, "end", end)
	k.emit(ctx, types.EventTypePhase,
		sdk.NewAttribute(types.AttributeKeyPhase, phase.String()),
		sdk.NewAttribute(types.AttributeKeyStart, strconv.FormatInt(start, 10)),
		sdk.NewAttribute(types.AttributeKeyEnd, strconv.FormatInt(end, 10)),
	)
	return nil
}

func (k Keeper) Phase(ctx context.Context, phase types.Phase) (types.PhaseWindow, error) {
	return k.Phases.Window(ctx, phase)
}

// IsPhaseActive evaluates the window against the injected block time.
func (k Keeper) IsPhaseActive(ctx context.Context, phase types.Phase) (bool, error) {
	w, err := k.Phases.Window(ctx, phase)
	if err != nil {
		return false, err
	}
	return w.IsActive(k.nowUnix(ctx)), nil
}
