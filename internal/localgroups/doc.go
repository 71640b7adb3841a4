// Package localgroups reads and mutates operating-system group membership.
//
// Reads go through getent so the canonical NSS group database answers, and
// mutations go through gpasswd one member at a time so a single rejected
// member does not block the rest of a reconciliation pass.
package localgroups
