// Package relay implements the connection lifecycle and broadcast core of
// the chat server.
//
// The package implements:
//   - Session: one accepted connection with a serialized outbound FIFO queue
//   - Hub: the shared registry of live sessions and the broadcast fan-out
//   - Handler: WebSocket handshake and attachment of new connections
//
// Key guarantees:
//   - Frames enqueued for a peer are written in enqueue order, with at most
//     one write outstanding per session at any instant
//   - A session is registered exactly while it has completed the handshake
//     and has not yet closed; closing is idempotent across read-side and
//     write-side failure paths
//   - Every error is local to one session or one handshake; no error stops
//     the accept surface or another session's processing
package relay
