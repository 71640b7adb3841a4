// Package groupsync reconciles remote directory group membership against
// local operating-system groups.
//
// The Service fetches the remote and local member sets for each configured
// mapping, computes the membership delta, applies member additions and
// removals one at a time, and reports one summary line per mapping. Fetch and
// local-read failures abort the run; individual mutation failures are logged
// and skipped.
package groupsync
