// Package gws implements a client for the Groups Web Service.
//
// The client authenticates with a client certificate over TLS, fetches the
// member list of a remote group, and filters the response down to personal
// account identifiers suitable for local group reconciliation.
package gws
