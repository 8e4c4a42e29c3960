// Package handlers implements the JSON API endpoints. Every response uses
// the envelope {"code": 1|0, "msg": ..., "data": ...} where code 1 means
// success.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the uniform response body of the API.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondOK writes a success envelope with HTTP 200.
func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: 1, Msg: "success", Data: data})
}

// respondCreated writes a success envelope with HTTP 201.
func respondCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Code: 1, Msg: "success", Data: data})
}

// respondError writes a failure envelope with the given status and message.
func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Code: 0, Msg: msg, Data: nil})
}

// respondInternal logs the underlying error and writes a generic 500
// envelope, never leaking internals to the client.
func respondInternal(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
