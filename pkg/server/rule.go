package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/telemetry/logging"
)

// ruleRequest is the /rule body. Name is preferred; displayName is what
// browser front ends send.
type ruleRequest struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"displayName"`
	DBCreds     *lookup.Credentials `json:"dbCreds"`
}

func (r ruleRequest) ruleName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return strings.TrimSpace(r.DisplayName)
}

type ruleHandler struct {
	rules lookup.Lookuper
}

func (h *ruleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if tooLarge(err) {
			writeStatus(w, http.StatusRequestEntityTooLarge, StatusBodyTooLarge, nil)
			return
		}
		writeStatus(w, http.StatusBadRequest, StatusMissingParameters, nil)
		return
	}

	name := req.ruleName()
	if name == "" || req.DBCreds == nil || req.DBCreds.Validate() != nil {
		writeStatus(w, http.StatusBadRequest, StatusMissingParameters, nil)
		return
	}

	result, err := h.rules.Lookup(r.Context(), lookup.Request{
		Name:        name,
		DisplayName: req.DisplayName,
		Credentials: *req.DBCreds,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("rule lookup failed",
			"rule", name,
			"target", req.DBCreds.Identity(),
			"error", err,
		)
		writeStatus(w, http.StatusInternalServerError, StatusDBError, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
