package types

import (
	"fmt"
	"math/bits"
)

type PhaseConfig struct {
	Phase  Phase       `json:"phase"`
	Window PhaseWindow `json:"window"`
}

type SignerEntry struct {
	Phase   Phase  `json:"phase"`
	Account string `json:"account"`
}

// Asset is the exported view of one issued unit.
type Asset struct {
	ID        uint64 `json:"id"`
	Owner     string `json:"owner"`
	Invalid   bool   `json:"invalid,omitempty"`
	LastReset int64  `json:"last_reset"`
}

type QuotaEntry struct {
	Recipient string `json:"recipient"`
	Phase     Phase  `json:"phase"`
	Minted    uint64 `json:"minted"`
}

type TicketBalance struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

type TokenRoyalty struct {
	TokenID uint64      `json:"token_id"`
	Royalty RoyaltyInfo `json:"royalty"`
}

type OperatorApproval struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
}

type GenesisState struct {
	Params         Params             `json:"params"`
	Owner          string             `json:"owner"`
	Authorizers    []string           `json:"authorizers"`
	Phases         []PhaseConfig      `json:"phases"`
	Signers        []SignerEntry      `json:"signers"`
	Assets         []Asset            `json:"assets"`
	Operators      []OperatorApproval `json:"operators"`
	Quotas         []QuotaEntry       `json:"quotas"`
	TicketBalances []TicketBalance    `json:"ticket_balances"`
	Redeemed       []string           `json:"redeemed"`
	AccrualEpoch   int64              `json:"accrual_epoch"`
	Custodian      string             `json:"custodian"`
	BaseURI        string             `json:"base_uri"`
	TicketURI      string             `json:"ticket_uri"`
	DefaultRoyalty RoyaltyInfo        `json:"default_royalty"`
	TokenRoyalties []TokenRoyalty     `json:"token_royalties"`

	TicketDefaultRoyalty RoyaltyInfo    `json:"ticket_default_royalty"`
	TicketTokenRoyalties []TokenRoyalty `json:"ticket_token_royalties"`
}

func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:         DefaultParams(),
		Authorizers:    []string{},
		Phases:         []PhaseConfig{},
		Signers:        []SignerEntry{},
		Assets:         []Asset{},
		Operators:      []OperatorApproval{},
		Quotas:         []QuotaEntry{},
		TicketBalances: []TicketBalance{},
		Redeemed:       []string{},
		DefaultRoyalty: RoyaltyInfo{Bps: DefaultRoyaltyBps},
		TokenRoyalties: []TokenRoyalty{},

		TicketDefaultRoyalty: RoyaltyInfo{Bps: DefaultRoyaltyBps},
		TicketTokenRoyalties: []TokenRoyalty{},
	}
}

func validateAccount(field, hex string, allowEmpty bool) error {
	if hex == "" {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%s must be set", field)
	}
	addr, err := AccountFromHex(hex)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if IsZeroAccount(addr) {
		return fmt.Errorf("%s must not be the zero address", field)
	}
	return nil
}

func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if err := validateAccount("owner", gs.Owner, false); err != nil {
		return err
	}
	if err := validateAccount("custodian", gs.Custodian, true); err != nil {
		return err
	}
	if gs.AccrualEpoch < 0 {
		return fmt.Errorf("accrual_epoch must not be negative")
	}

	seen := make(map[string]struct{})
	for _, a := range gs.Authorizers {
		if err := validateAccount("authorizer", a, false); err != nil {
			return err
		}
		if _, ok := seen[a]; ok {
			return fmt.Errorf("duplicated authorizer %s", a)
		}
		seen[a] = struct{}{}
	}

	phases := make(map[Phase]struct{})
	for _, pc := range gs.Phases {
		if !pc.Phase.IsValid() {
			return fmt.Errorf("unknown phase %d", pc.Phase)
		}
		if _, ok := phases[pc.Phase]; ok {
			return fmt.Errorf("duplicated phase %s", pc.Phase)
		}
		phases[pc.Phase] = struct{}{}
		if err := pc.Window.Validate(); err != nil {
			return fmt.Errorf("%s: %w", pc.Phase, err)
		}
	}

	signers := make(map[Phase]struct{})
	for _, s := range gs.Signers {
		if !s.Phase.IsSigned() {
			return fmt.Errorf("phase %s does not take a signer", s.Phase)
		}
		if _, ok := signers[s.Phase]; ok {
			return fmt.Errorf("duplicated signer for %s", s.Phase)
		}
		signers[s.Phase] = struct{}{}
		if err := validateAccount("signer", s.Account, false); err != nil {
			return err
		}
	}

	if uint64(len(gs.Assets)) > gs.Params.MaxSupply {
		return fmt.Errorf("%d assets exceed max_supply %d", len(gs.Assets), gs.Params.MaxSupply)
	}
	for i, a := range gs.Assets {
		if i > 0 && a.ID <= gs.Assets[i-1].ID {
			return fmt.Errorf("asset ids must be strictly ascending: got %d after %d", a.ID, gs.Assets[i-1].ID)
		}
		if err := validateAccount("asset owner", a.Owner, false); err != nil {
			return err
		}
		if a.LastReset < 0 {
			return fmt.Errorf("asset %d: last_reset must not be negative", a.ID)
		}
	}

	for _, op := range gs.Operators {
		if err := validateAccount("operator owner", op.Owner, false); err != nil {
			return err
		}
		if err := validateAccount("operator", op.Operator, false); err != nil {
			return err
		}
	}

	quotas := make(map[string]struct{})
	for _, q := range gs.Quotas {
		if !q.Phase.IsValid() {
			return fmt.Errorf("unknown quota phase %d", q.Phase)
		}
		if err := validateAccount("quota recipient", q.Recipient, false); err != nil {
			return err
		}
		key := q.Recipient + "|" + q.Phase.String()
		if _, ok := quotas[key]; ok {
			return fmt.Errorf("duplicated quota for %s", key)
		}
		quotas[key] = struct{}{}
	}

	var tickets uint64
	holders := make(map[string]struct{})
	for _, tb := range gs.TicketBalances {
		if err := validateAccount("ticket holder", tb.Account, false); err != nil {
			return err
		}
		if _, ok := holders[tb.Account]; ok {
			return fmt.Errorf("duplicated ticket balance for %s", tb.Account)
		}
		holders[tb.Account] = struct{}{}
		sum, carry := bits.Add64(tickets, tb.Amount, 0)
		if carry != 0 {
			return fmt.Errorf("ticket balances overflow")
		}
		tickets = sum
	}
	if tickets > gs.Params.TicketMaxSupply {
		return fmt.Errorf("%d tickets exceed ticket_max_supply %d", tickets, gs.Params.TicketMaxSupply)
	}

	for _, r := range gs.Redeemed {
		if err := validateAccount("redeemed", r, false); err != nil {
			return err
		}
	}

	if err := validateRoyalties(gs.DefaultRoyalty, gs.TokenRoyalties); err != nil {
		return err
	}
	if err := validateRoyalties(gs.TicketDefaultRoyalty, gs.TicketTokenRoyalties); err != nil {
		return fmt.Errorf("ticket %w", err)
	}
	return nil
}

func validateRoyalties(def RoyaltyInfo, tokens []TokenRoyalty) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("royalty: %w", err)
	}
	ids := make(map[uint64]struct{}, len(tokens))
	for _, tr := range tokens {
		if _, ok := ids[tr.TokenID]; ok {
			return fmt.Errorf("royalty: duplicated token %d", tr.TokenID)
		}
		ids[tr.TokenID] = struct{}{}
		if err := tr.Royalty.Validate(); err != nil {
			return fmt.Errorf("royalty for token %d: %w", tr.TokenID, err)
		}
	}
	return nil
}

// ExternalHolding seeds the external collection consumed by redemption.
type ExternalHolding struct {
	ID    uint64 `json:"id"`
	Owner string `json:"owner"`
}

type ExternalGenesisState struct {
	Holdings []ExternalHolding `json:"holdings"`
}

func (gs ExternalGenesisState) Validate() error {
	ids := make(map[uint64]struct{}, len(gs.Holdings))
	for _, h := range gs.Holdings {
		if _, ok := ids[h.ID]; ok {
			return fmt.Errorf("duplicated external id %d", h.ID)
		}
		ids[h.ID] = struct{}{}
		if err := validateAccount("external owner", h.Owner, false); err != nil {
			return err
		}
	}
	return nil
}
