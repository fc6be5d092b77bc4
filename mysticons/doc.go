// Package mysticons submits the setup and lifecycle transactions of the
// mysticons Move package: display registration, minting, training, creature
// attachment, locking and burning.
//
// Each invocation opens one Session (operator key plus node connection) and
// dispatches a single Operation to it, which submits exactly one transaction.
package mysticons
