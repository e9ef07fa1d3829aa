package errors

import (
	"github.com/mezonai/svmharness/jsonx"
)

// RPCErrorCode is a machine readable reason attached to JSON-RPC errors.
type RPCErrorCode string

const (
	ErrCodeInternal            RPCErrorCode = "internal_error"
	ErrCodeInvalidRequest      RPCErrorCode = "invalid_request"
	ErrCodeInvalidAddress      RPCErrorCode = "invalid_address"
	ErrCodeUnsupportedEncoding RPCErrorCode = "unsupported_encoding"
	ErrCodeTooManyAccounts     RPCErrorCode = "too_many_accounts"
)

// RPCError is the data object carried by JSON-RPC error responses.
type RPCError struct {
	Code    RPCErrorCode `json:"code"`
	Message string       `json:"message"`
}

// Error implements the error interface
func (e *RPCError) Error() string {
	out, _ := jsonx.Marshal(RPCError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(out)
}

const (
	ErrMsgInvalidRequest      = "Request params are invalid"
	ErrMsgInvalidAddress      = "Account address is invalid"
	ErrMsgUnsupportedEncoding = "Only base64 account encoding is supported"
	ErrMsgTooManyAccounts     = "Too many accounts requested (max %d)"
)

// NewError creates a new RPCError and returns it as error interface
func NewError(code RPCErrorCode, message string) error {
	return &RPCError{
		Code:    code,
		Message: message,
	}
}
