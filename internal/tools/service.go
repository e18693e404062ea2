// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package tools implements the filesystem tools exported over MCP: listing,
// reading, searching, tree traversal, editing, writing and destructive
// operations, all behind pathguard containment.
package tools

import (
	"github.com/rs/zerolog"

	"fsward/internal/config"
	"fsward/internal/pathguard"
)

// Limits shared by every operation. Directory listings and trees stop at
// maxEntries nodes, search results at maxSearchResults unless the caller
// asks for fewer (capped at maxSearchCeiling).
const (
	maxEntries       = 1000
	maxSearchResults = 50
	maxSearchCeiling = 200

	// binarySniffLen is how many leading bytes are scanned for a null
	// byte before a file is treated as binary.
	binarySniffLen = 8192
)

// Service holds the validated configuration and the path guard built from
// its allowed roots. All tool operations are methods on it; each returns
// the human-readable text that becomes the tool result.
type Service struct {
	cfg   config.Config
	guard *pathguard.Guard
	log   zerolog.Logger
}

// NewService builds a Service from an already-validated configuration.
func NewService(cfg config.Config, log zerolog.Logger) *Service {
	return &Service{
		cfg:   cfg,
		guard: pathguard.New(cfg.AllowedDirectories),
		log:   log,
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() config.Config { return s.cfg }
