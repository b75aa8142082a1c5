// Package sdk is the client for the Tally ledger RPC service. Command
// handlers are thin wrappers over these calls; all chain semantics live on
// the service side.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// Client talks to a Tally RPC endpoint.
type Client struct {
	httpClient *http.Client
	rpcURL     string
	programID  string
	logger     *zap.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// NewClient creates a client for rpcURL. An empty programID falls back to the
// TALLY_PROGRAM_ID environment variable; a client cannot be built without one.
func NewClient(rpcURL, programID string, opts ...ClientOption) (*Client, error) {
	if programID == "" {
		programID = os.Getenv("TALLY_PROGRAM_ID")
	}
	if programID == "" {
		return nil, fmt.Errorf("program ID is required (set TALLY_PROGRAM_ID or --program-id)")
	}
	if err := ValidateAddress(programID); err != nil {
		return nil, fmt.Errorf("invalid program ID: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		rpcURL:     rpcURL,
		programID:  programID,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// ProgramID returns the program the client targets.
func (c *Client) ProgramID() string { return c.programID }

// RPCURL returns the endpoint the client talks to.
func (c *Client) RPCURL() string { return c.rpcURL }

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call performs one JSON-RPC round trip, decoding the result into out.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Tally-Program", c.programID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("rpc call",
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return &RPCError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

// GetGlobalConfig fetches the platform configuration account.
func (c *Client) GetGlobalConfig(ctx context.Context) (*GlobalConfig, error) {
	var cfg GlobalConfig
	if err := c.call(ctx, "tally_getConfig", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetPayee fetches a payee account by address.
func (c *Client) GetPayee(ctx context.Context, address string) (*Payee, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	var p Payee
	if err := c.call(ctx, "tally_getPayee", map[string]string{"address": address}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// InitPayee creates a new payee (merchant) account.
func (c *Client) InitPayee(ctx context.Context, params InitPayeeParams) (*InitPayeeResult, error) {
	var res InitPayeeResult
	if err := c.call(ctx, "tally_initPayee", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreatePaymentTerms creates a new payment terms account under a payee.
func (c *Client) CreatePaymentTerms(ctx context.Context, params CreateTermsParams) (*CreateTermsResult, error) {
	var res CreateTermsResult
	if err := c.call(ctx, "tally_createPaymentTerms", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListPaymentTerms returns all payment terms owned by a payee.
func (c *Client) ListPaymentTerms(ctx context.Context, payee string) ([]PaymentTerms, error) {
	if err := ValidateAddress(payee); err != nil {
		return nil, err
	}
	var terms []PaymentTerms
	if err := c.call(ctx, "tally_listPaymentTerms", map[string]string{"payee": payee}, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// GetAgreement fetches one payment agreement by address.
func (c *Client) GetAgreement(ctx context.Context, address string) (*Agreement, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}
	var a Agreement
	if err := c.call(ctx, "tally_getAgreement", map[string]string{"address": address}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAgreements returns all agreements under a set of payment terms.
func (c *Client) ListAgreements(ctx context.Context, paymentTerms string) ([]Agreement, error) {
	if err := ValidateAddress(paymentTerms); err != nil {
		return nil, err
	}
	var agreements []Agreement
	if err := c.call(ctx, "tally_listAgreements", map[string]string{"payment_terms": paymentTerms}, &agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}

// Events returns merchant events at or after the since timestamp.
func (c *Client) Events(ctx context.Context, merchant string, since int64) ([]Event, error) {
	if err := ValidateAddress(merchant); err != nil {
		return nil, err
	}
	params := map[string]any{"merchant": merchant, "since": since}
	var events []Event
	if err := c.call(ctx, "tally_getEvents", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListSubscriptions returns agreements across all of a merchant's payment
// terms, optionally filtered to active ones.
func (c *Client) ListSubscriptions(ctx context.Context, merchant string, activeOnly bool) ([]Agreement, error) {
	if err := ValidateAddress(merchant); err != nil {
		return nil, err
	}
	params := map[string]any{"merchant": merchant, "active_only": activeOnly}
	var agreements []Agreement
	if err := c.call(ctx, "tally_listSubscriptions", params, &agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}

// GetBalance returns the lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, address string) (uint64, error) {
	if err := ValidateAddress(address); err != nil {
		return 0, err
	}
	var res struct {
		Lamports uint64 `json:"lamports"`
	}
	if err := c.call(ctx, "tally_getBalance", map[string]string{"address": address}, &res); err != nil {
		return 0, err
	}
	return res.Lamports, nil
}
