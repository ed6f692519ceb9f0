// Copyright (c) Nimbus AI. All rights reserved.

package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed explorer.html
var explorerHTML []byte

// handleExplorer serves the interactive explorer page. It is a single static
// HTML file that talks to the JSON API from the browser.
func (s *Server) handleExplorer(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(explorerHTML)
}
