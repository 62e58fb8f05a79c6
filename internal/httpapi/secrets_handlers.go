package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/secrets"
)

type SecretsHandler struct{}

type setSecretReq struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Set stores a named secret in the OS keychain so the engine can resolve it
// without the user exporting env vars.
func (h SecretsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetKeyring(req.Name, req.Value); err != nil {
		http.Error(w, "failed to store secret: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
