package rpc

import "github.com/goccy/go-json"

// Request is the inbound JSON-RPC 2.0 envelope, per spec.md §6.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is the outbound JSON-RPC 2.0 envelope: exactly one of Result or
// Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func newResponse(id json.RawMessage, result interface{}, err *Error) Response {
	resp := Response{JSONRPC: "2.0", ID: id}
	if err != nil {
		resp.Error = err
	} else {
		resp.Result = result
	}
	return resp
}

// decodeParams unmarshals req.Params into out, or returns an
// invalid-params Error describing the count/shape mismatch.
func decodeParams(params json.RawMessage, out interface{}) *Error {
	if len(params) == 0 {
		return NewInvalidParamsError("missing params")
	}
	if err := json.Unmarshal(params, out); err != nil {
		return NewInvalidParamsError("invalid params: " + err.Error())
	}
	return nil
}
