// Package credential persists the access/refresh credential pair used by the
// authenticated transport.
//
// A Store sits on top of a pluggable secret Backend. The memory backend is
// sufficient for tests and short lived processes; the file backend keeps the
// pair encrypted at rest on any afs-supported location; the redis backend
// shares one session between several processes.
package credential
