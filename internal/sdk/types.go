package sdk

// GlobalConfig is the on-chain platform configuration account.
type GlobalConfig struct {
	PlatformAuthority       string `json:"platform_authority"`
	PendingAuthority        string `json:"pending_authority,omitempty"`
	MaxPlatformFeeBps       uint16 `json:"max_platform_fee_bps"`
	MinPlatformFeeBps       uint16 `json:"min_platform_fee_bps"`
	MinPeriodSeconds        int64  `json:"min_period_seconds"`
	DefaultAllowancePeriods uint32 `json:"default_allowance_periods"`
	AllowedMint             string `json:"allowed_mint"`
	MaxWithdrawalAmount     uint64 `json:"max_withdrawal_amount"`
	MaxGracePeriodSeconds   int64  `json:"max_grace_period_seconds"`
	Paused                  bool   `json:"paused"`
	KeeperFeeBps            uint16 `json:"keeper_fee_bps"`
}

// Payee is a merchant account on the ledger.
type Payee struct {
	Address     string `json:"address"`
	Authority   string `json:"authority"`
	Treasury    string `json:"treasury"`
	FeeBps      uint16 `json:"fee_bps"`
	TermsCount  uint32 `json:"terms_count"`
	TotalVolume uint64 `json:"total_volume"`
	CreatedAt   int64  `json:"created_at"`
}

// PaymentTerms is one recurring-payment plan owned by a payee.
type PaymentTerms struct {
	Address       string `json:"address"`
	Payee         string `json:"payee"`
	TermsID       string `json:"terms_id"`
	AmountMicros  uint64 `json:"amount_micros"`
	PeriodSeconds int64  `json:"period_seconds"`
	GraceSeconds  int64  `json:"grace_seconds"`
	Active        bool   `json:"active"`
	Subscribers   uint32 `json:"subscribers"`
}

// Agreement is one payer's subscription to a set of payment terms.
type Agreement struct {
	Address      string `json:"address"`
	PaymentTerms string `json:"payment_terms"`
	Payer        string `json:"payer"`
	Status       string `json:"status"`
	StartedAt    int64  `json:"started_at"`
	NextDueAt    int64  `json:"next_due_at"`
	PaidPeriods  uint32 `json:"paid_periods"`
	TotalPaid    uint64 `json:"total_paid"`
}

// Event is a ledger event emitted for a merchant.
type Event struct {
	Signature string `json:"signature"`
	Kind      string `json:"kind"`
	Merchant  string `json:"merchant"`
	Agreement string `json:"agreement,omitempty"`
	Amount    uint64 `json:"amount,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// InitPayeeParams are the inputs to InitPayee.
type InitPayeeParams struct {
	Authority string `json:"authority"`
	Treasury  string `json:"treasury"`
	USDCMint  string `json:"usdc_mint,omitempty"`
}

// InitPayeeResult reports the created payee account.
type InitPayeeResult struct {
	Payee     string `json:"payee"`
	Signature string `json:"signature"`
}

// CreateTermsParams are the inputs to CreatePaymentTerms.
type CreateTermsParams struct {
	Payee         string `json:"payee"`
	Authority     string `json:"authority"`
	TermsID       string `json:"terms_id"`
	AmountMicros  uint64 `json:"amount_micros"`
	PeriodSeconds int64  `json:"period_seconds"`
}

// CreateTermsResult reports the created payment terms account.
type CreateTermsResult struct {
	PaymentTerms string `json:"payment_terms"`
	Signature    string `json:"signature"`
}
