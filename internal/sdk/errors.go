package sdk

import "fmt"

// RPCError is an error response from the Tally RPC service.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("RPC error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// NotFound reports whether the error is an account-not-found response.
func (e *RPCError) NotFound() bool { return e.Code == -32004 }

// InvalidAddressError indicates a string that is not a base58 account address.
type InvalidAddressError struct {
	Value string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid account address %q: expected a base58-encoded 32-byte public key", e.Value)
}
