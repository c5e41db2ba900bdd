// Package rpc is the request dispatch surface (boundary only, per
// spec.md §4.11): a static method table built from a comma-separated
// namespace list, a panic-to-code-100 recovery boundary, and the HTTP
// transport (go-chi/chi/v5 + go-chi/cors, goccy/go-json encoding).
// Grounded in the kept silkrpc/commands/rpc_api_table.hpp/.cpp
// (RpcApiTable::build_handlers/add_handlers, one add_*_handlers per
// namespace) and silkrpc/commands/engine_api.cpp's handler shape
// (params-count check, try/catch-all converting to make_json_error).
package rpc

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/log"
)

// HandlerFunc is a registered method's implementation: it receives the raw
// params array and returns the result to marshal, or an *Error.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, *Error)

// Namespace groups a set of methods under one api_spec name (e.g. "eth",
// "debug"), mirroring RpcApiTable::add_eth_handlers style registration.
type Namespace struct {
	Name    string
	Methods map[string]HandlerFunc
}

// Server holds the static method table built at construction from
// api_spec, and dispatches requests by exact method name.
type Server struct {
	methods map[string]HandlerFunc
	logger  log.Logger
}

// NewServer builds the method table for the namespaces named in apiSpec
// (comma-separated), skipping and warning about any namespace not present
// in available.
func NewServer(apiSpec string, available []Namespace, logger log.Logger) *Server {
	wanted := map[string]bool{}
	for _, n := range strings.Split(apiSpec, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			wanted[n] = true
		}
	}

	s := &Server{methods: map[string]HandlerFunc{}, logger: logger}
	seen := map[string]bool{}
	for _, ns := range available {
		if !wanted[ns.Name] {
			continue
		}
		seen[ns.Name] = true
		for method, h := range ns.Methods {
			s.methods[method] = h
		}
	}
	for name := range wanted {
		if !seen[name] {
			logger.Warn("unknown api_spec namespace, skipping", "namespace", name)
		}
	}
	return s
}

// Dispatch handles one already-decoded Request, recovering from any panic
// escaping the handler and translating it into a CodeHandlerException
// reply per spec.md §4.11/§7 ("Exceptions escaping a handler are caught
// and converted into a JSON-RPC error with code 100 ... non-exception
// failures become code 100 with 'unexpected exception'").
func (s *Server) Dispatch(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			msg := "unexpected exception"
			if err, ok := r.(error); ok {
				msg = err.Error()
			} else if str, ok := r.(string); ok {
				msg = str
			}
			resp = newResponse(req.ID, nil, &Error{Code: CodeHandlerException, Message: msg})
		}
	}()

	handler, ok := s.methods[req.Method]
	if !ok {
		return newResponse(req.ID, nil, &Error{Code: CodeMethodNotFound, Message: "the method " + req.Method + " does not exist/is not available"})
	}
	result, err := handler(ctx, req.Params)
	if err != nil {
		return newResponse(req.ID, nil, err)
	}
	return newResponse(req.ID, result, nil)
}

// HTTPHandler builds the chi router serving JSON-RPC POST requests at "/",
// with CORS enabled per corsOrigins (empty means no CORS headers).
func (s *Server) HTTPHandler(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))
	}
	r.Post("/", s.serveHTTP)
	return r
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, newResponse(nil, nil, NewInvalidParamsError("invalid request body: "+err.Error())))
		return
	}
	resp := s.Dispatch(r.Context(), req)
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
