// Package remote defines the ingress contract a network collaborator
// would implement to feed server-produced blocks into the same
// projection path the file reader uses — without implementing that
// collaborator. The wire client, connection pooling, and query protocol
// for talking to a live server are out of scope here; only the boundary
// (BlockSource, DSN parsing) is defined, so the rest of this module never
// needs to know whether a Block came from a file or a socket.
package remote
