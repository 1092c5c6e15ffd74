// Package database provides the data access layer for the courier desk.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connector, migrations, DSNs
//	├── errors.go        # Driver error classification
//	├── books/           # Unassigned and assigned task queries
//	├── assignments/     # Select, deselect, mark, comment units of work
//	├── couriers/        # Courier accounts and credential checks
//	├── audit/           # Audit event storage
//	└── dbtest/          # Throwaway sqlite bookstores for tests
//
// # Connections
//
// There is no long-lived handle. Connector.Do opens a connection, hands it
// to the callback and closes it on every exit path; Connector.Transact does
// the same around one transaction:
//
//	conn, err := database.NewConnector(cfg.Database)
//
//	booksRepo := books.NewRepository(conn)
//	tasks, err := booksRepo.QueryUnassigned(ctx)
//
//	err = assignments.NewRepository(conn).Select(ctx, tasks[0].Key(), courierID)
//
// # Errors
//
// Repositories return the sentinels defined here, wrapped with context:
//
//   - ErrConnectivity: the database could not be opened or stopped answering
//   - ErrPrecondition: the task was not in the state the action needs
//   - ErrCommitFailure: the unit of work was rolled back at commit
//
// # Interface Implementations
//
//   - books.Repository: implements desk.Queries
//   - assignments.Repository: implements desk.Mutations
//   - couriers.Repository: implements auth.CourierRepository
//   - audit.Repository: implements audit.Repository
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *database.Connector field
//  3. Add NewRepository(conn *database.Connector) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
