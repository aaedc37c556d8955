package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
)

// readRaw reads the request body verbatim for routes whose payload shape is
// owned by a backend service, mirroring clients.postRaw on the way in.
func readRaw(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid request body"))
		return nil, false
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	return data, true
}

// decode unmarshals the request body into v for the few routes the gateway
// itself interprets rather than forwarding untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid request body"))
		return false
	}
	return true
}

// writeRaw forwards a backend's response body verbatim.
func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		logger.Log.Error("write response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	logger.Log.Error("request failed", "error", err)
	writeJSON(w, apperror.HTTPStatus(err), map[string]string{"error": err.Error()})
}

// proxy forwards the request body to call and writes the raw response back,
// the shape every pass-through route (analytics, validation, history,
// report, audit, most of simulation) reduces to.
func proxy(call func(w http.ResponseWriter, r *http.Request, body json.RawMessage)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readRaw(w, r)
		if !ok {
			return
		}
		call(w, r, body)
	}
}
