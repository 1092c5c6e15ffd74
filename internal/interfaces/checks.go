package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/cli"
	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/database/assignments"
	auditrepo "github.com/mrlokans/bookcourier/internal/database/audit"
	"github.com/mrlokans/bookcourier/internal/database/books"
	"github.com/mrlokans/bookcourier/internal/database/couriers"
	"github.com/mrlokans/bookcourier/internal/desk"
	"github.com/mrlokans/bookcourier/internal/http"
	"github.com/mrlokans/bookcourier/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Book Query Engine
var _ desk.Queries = (*books.Repository)(nil)

// Transactional units of work
var _ desk.Mutations = (*assignments.Repository)(nil)

// Credential verification
var _ auth.CourierRepository = (*couriers.Repository)(nil)

// Audit persistence
var _ audit.Repository = (*auditrepo.Repository)(nil)

// Health checks
var _ http.Pinger = (*database.Connector)(nil)

// =============================================================================
// Prompts
// =============================================================================

var _ desk.CredentialPrompt = desk.StaticCredentials{}
var _ desk.CredentialPrompt = desk.CancelledCredentials{}
var _ desk.CredentialPrompt = (*cli.TerminalPrompt)(nil)
var _ desk.CommentPrompt = desk.StaticComment("")

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.Refresher = (*desk.Desk)(nil)
