// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/BlackRoad-OS/roadyaml/internal/version"
)

type statusResponse struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Environment string `json:"environment"`
	Uptime      int64  `json:"uptime"`
	Schemas     int    `json:"schemas"`
	Time        string `json:"time"`
}

// handleStatus reports build identity and runtime counters.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	schemas := 0
	if s.registry != nil {
		schemas = s.registry.Count()
	}

	writeJSON(w, r, http.StatusOK, statusResponse{
		Service:     "roadyaml",
		Version:     version.Version,
		Commit:      version.Commit,
		Environment: s.cfg.NodeEnv,
		Uptime:      int64(time.Since(s.startTime).Seconds()),
		Schemas:     schemas,
		Time:        time.Now().UTC().Format(time.RFC3339),
	})
}
