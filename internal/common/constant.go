// Package common contains constants shared by the transport, the facade and
// the CLI.
package common

const (
	// DefaultService is the PDS entryway used when no service is configured.
	DefaultService = "https://bsky.social"

	// DefaultChatProxy routes chat.bsky.* calls to the Bluesky chat service.
	DefaultChatProxy = "did:web:api.bsky.chat#bsky_chat"

	// ChatNamespacePrefix selects the calls that need DefaultChatProxy.
	ChatNamespacePrefix = "chat.bsky."

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// ProxyHeaderName asks the PDS to forward a call to another service.
	ProxyHeaderName = "atproto-proxy"
)
