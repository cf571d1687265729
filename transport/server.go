// Package transport exposes a Dispatcher over HTTP so a framework runtime in
// another process can drive the bridge with JSON calls.
package transport

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/santhosh-tekuri/jsonschema/v5"

	tpa "github.com/theperfectapp/tpa-bridge-go"
	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

const (
	CallPath    = "/v1/call"
	MethodsPath = "/v1/methods"

	maxBodyBytes = 1 << 20
)

//go:embed call.schema.json
var callSchemaJSON []byte

var callSchema = compileCallSchema()

func compileCallSchema() *jsonschema.Schema {
	const url = "https://theperfectapp.io/schemas/bridge-call.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(callSchemaJSON)); err != nil {
		panic(fmt.Sprintf("add call schema: %v", err))
	}
	return compiler.MustCompile(url)
}

type handler struct {
	dispatcher *tpa.Dispatcher
}

// NewHandler returns the HTTP API of d:
//
//	POST /v1/call     {"method": "...", "args": [...]} -> {"result": ...}
//	GET  /v1/methods  ["checkForUpdate", ...]
func NewHandler(d *tpa.Dispatcher) http.Handler {
	h := &handler{dispatcher: d}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("%s is not allowed on %s", r.Method, r.URL.Path))
	})
	r.Post(CallPath, h.call)
	r.Get(MethodsPath, h.methods)
	return r
}

func (h *handler) call(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}

	var envelope interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed JSON: %v", err))
		return
	}
	if err := callSchema.Validate(envelope); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid call: %v", err))
		return
	}

	var call api.Call
	if err := json.Unmarshal(body, &call); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid arguments: %v", err))
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), &call)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, api.CallResult{Result: result})
	case errors.Is(err, tpa.ErrUnknownMethod):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

func (h *handler) methods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.dispatcher.Methods())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		_ = util.Errorf("Encoding response failed: %v", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.CallResult{Error: message})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		util.Debugf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
