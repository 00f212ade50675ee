// Package repository implements data access for GameVault over the document
// store: the shared game catalog, per-user library ledgers, play session
// journals, and user profile documents.
//
// Repositories translate store results into model types and store failures
// into the database package's sentinel errors. Absence is reported as a nil
// record, not an error; the service layer decides which absences are
// NotFound conditions.
package repository
