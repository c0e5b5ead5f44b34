// Package xrpc is the remote-call layer of the client.
//
// # Operation tree
//
// Remote methods live in a Group tree addressed by NSID segments:
// "com.atproto.repo.getRecord" is the Method "getRecord" inside the group
// "repo" inside "atproto" inside "com". Nodes named "_service" and "_client"
// are bookkeeping Handles and are never treated as operations.
//
// # Interception
//
// Group.Intercept returns an equivalent tree in which every Method, at any
// depth, is wrapped by a chain of Interceptors. The walk is structural: a
// method added to the tree before Intercept is called is covered without
// being named anywhere. Throttle and Logging are the interceptors used by
// the client facade.
//
// # Transport
//
// Client sends XRPC calls over HTTP: queries as GET with URL parameters,
// procedures as POST with a JSON or raw body. Non-2xx responses become
// *APIError; failures to reach the service become *TransportError.
package xrpc
