// Package membership models group membership snapshots and their differences.
//
// It provides the MemberSet value type shared by the remote directory client
// and the local group manager, validation for personal account identifiers,
// and the pure set difference that drives reconciliation.
package membership
