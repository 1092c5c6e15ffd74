// Package interfaces documents the seams of the courier desk.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - Queries: the unassigned and assigned row sets (internal/desk/desk.go)
//   - Mutations: select, deselect, mark and comment units of work (internal/desk/executor.go)
//   - CourierRepository: credential verification (internal/auth/service.go)
//   - Repository: audit event persistence (internal/audit/service.go)
//   - Pinger: database reachability for /health (internal/http/config.go)
//
// ## Prompt Interfaces
//
//   - CredentialPrompt: courier id and password hash, or cancel (internal/desk/prompts.go)
//   - CommentPrompt: edited comment, or cancel (internal/desk/prompts.go)
//
// ## Background Work
//
//   - Refresher: periodic re-query of the active table (internal/scheduler/refresh.go)
//
// # Adding a New Front-End
//
// A front-end only needs a CredentialPrompt and a CommentPrompt, and turns
// its widget signals into desk events:
//
//	type TUIPrompt struct{ form *Form }
//
//	func (p *TUIPrompt) Credentials(ctx context.Context) (string, string, bool) {
//	    id, password, ok := p.form.Ask()
//	    return id, auth.HashPassword(id, password), ok
//	}
//
//	var _ desk.CredentialPrompt = (*TUIPrompt)(nil)
//
//	d.Login(ctx, prompt, "")
//	d.Dispatch(ctx, desk.RowSelectionChanged{Tab: desk.TabInput, Current: row, Previous: prev})
//
// The desk API in internal/http is one such front-end; cli.TerminalPrompt is
// another credential prompt.
//
// # Adding a New Database Driver
//
//  1. Add a Driver constant in internal/config
//  2. Build its DSN and dialector in database.NewConnector
//  3. Classify its constraint and connection errors in internal/database/errors.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
