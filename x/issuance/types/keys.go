package types

import "cosmossdk.io/collections"

const (
	ModuleName = "issuance"
	StoreKey   = ModuleName

	// ExternalStoreKey holds the collection whose units are burned by redemption.
	ExternalStoreKey = "external"

	// LegacyStoreKey holds the earlier frens collection consumed by reveal.
	LegacyStoreKey = "legacy"
)

var ParamsKey = collections.NewPrefix("issuance/params")

var (
	OwnerKey          = collections.NewPrefix("issuance/owner")
	AuthorizerKey     = collections.NewPrefix("issuance/authorizer/")
	PhaseKey          = collections.NewPrefix("issuance/phase/")
	SignerKey         = collections.NewPrefix("issuance/signer/")
	QuotaKey          = collections.NewPrefix("issuance/quota/")
	SupplyKey         = collections.NewPrefix("issuance/supply/")
	AccrualEpochKey   = collections.NewPrefix("issuance/accrual/epoch")
	CustodianKey      = collections.NewPrefix("issuance/accrual/custodian")
	LastResetKey      = collections.NewPrefix("issuance/accrual/last_reset/")
	BaseURIKey        = collections.NewPrefix("issuance/metadata/base_uri")
	TicketURIKey      = collections.NewPrefix("issuance/metadata/ticket_uri")
	TicketBalanceKey  = collections.NewPrefix("issuance/ticket/balance/")
	RedeemedKey       = collections.NewPrefix("issuance/ticket/redeemed/")
	DefaultRoyaltyKey = collections.NewPrefix("issuance/royalty/default")
	TokenRoyaltyKey   = collections.NewPrefix("issuance/royalty/token/")

	TicketDefaultRoyaltyKey = collections.NewPrefix("issuance/ticket/royalty/default")
	TicketTokenRoyaltyKey   = collections.NewPrefix("issuance/ticket/royalty/token/")
)

// RegistryPrefixes namespaces one ownership registry inside a store.
type RegistryPrefixes struct {
	Namespace string

	Owner    collections.Prefix
	Balance  collections.Prefix
	Owned    collections.Prefix
	Invalid  collections.Prefix
	Operator collections.Prefix
	NextID   collections.Prefix
}

func NewRegistryPrefixes(namespace string) RegistryPrefixes {
	return RegistryPrefixes{
		Namespace: namespace,
		Owner:     collections.NewPrefix(namespace + "/registry/owner/"),
		Balance:   collections.NewPrefix(namespace + "/registry/balance/"),
		Owned:     collections.NewPrefix(namespace + "/registry/owned/"),
		Invalid:   collections.NewPrefix(namespace + "/registry/invalid/"),
		Operator:  collections.NewPrefix(namespace + "/registry/operator/"),
		NextID:    collections.NewPrefix(namespace + "/registry/next_id"),
	}
}

var (
	AssetRegistryPrefixes    = NewRegistryPrefixes(ModuleName)
	ExternalRegistryPrefixes = NewRegistryPrefixes(ExternalStoreKey)
	LegacyRegistryPrefixes   = NewRegistryPrefixes(LegacyStoreKey)
)
