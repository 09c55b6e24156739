package types

const (
	EventTypeIssue      = "issuance.issue"
	EventTypeTransfer   = "issuance.transfer"
	EventTypeRedeem     = "issuance.redeem"
	EventTypePhase      = "issuance.phase"
	EventTypeSigner     = "issuance.signer"
	EventTypeAuthorizer = "issuance.authorizer"
	EventTypeValidity   = "issuance.validity"
	EventTypeAccrual    = "issuance.accrual"
	EventTypeRoyalty    = "issuance.royalty"
	EventTypeMetadata   = "issuance.metadata"
	EventTypeOwnership  = "issuance.ownership"
	EventTypeApproval   = "issuance.approval"
	EventTypeReveal     = "issuance.reveal"

	AttributeKeyPhase     = "phase"
	AttributeKeyClass     = "class"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
	AttributeKeyFirstID   = "first_id"
	AttributeKeyTokenID   = "token_id"
	AttributeKeyFrom      = "from"
	AttributeKeyTo        = "to"
	AttributeKeyAccount   = "account"
	AttributeKeyEnabled   = "enabled"
	AttributeKeyStart     = "start"
	AttributeKeyEnd       = "end"
	AttributeKeyValid     = "valid"
	AttributeKeyEpoch     = "epoch"
	AttributeKeyBps       = "bps"
	AttributeKeyURI       = "uri"
	AttributeKeyBurned    = "burned"
	AttributeKeyIDs       = "ids"
)
