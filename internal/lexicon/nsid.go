// Package lexicon holds the NSIDs and JSON wire shapes of the XRPC methods
// used by the client. Types here are data only.
package lexicon

// Kind tells the transport how a method is sent.
type Kind int

const (
	// Query methods are HTTP GET with URL parameters.
	Query Kind = iota
	// Procedure methods are HTTP POST with a body.
	Procedure
)

func (k Kind) String() string {
	if k == Procedure {
		return "procedure"
	}
	return "query"
}

const (
	ServerCreateSession   = "com.atproto.server.createSession"
	ServerGetSession      = "com.atproto.server.getSession"
	ServerRefreshSession  = "com.atproto.server.refreshSession"
	ServerDeleteSession   = "com.atproto.server.deleteSession"
	IdentityResolveHandle = "com.atproto.identity.resolveHandle"
	RepoGetRecord         = "com.atproto.repo.getRecord"
	RepoCreateRecord      = "com.atproto.repo.createRecord"
	RepoDeleteRecord      = "com.atproto.repo.deleteRecord"
	RepoUploadBlob        = "com.atproto.repo.uploadBlob"
	ActorGetProfile       = "app.bsky.actor.getProfile"
	ConvoGetConvo         = "chat.bsky.convo.getConvo"
	ConvoListConvos       = "chat.bsky.convo.listConvos"
	ConvoGetMessages      = "chat.bsky.convo.getMessages"
	ConvoSendMessage      = "chat.bsky.convo.sendMessage"
)

// Methods lists every method the client knows how to send.
var Methods = map[string]Kind{
	ServerCreateSession:   Procedure,
	ServerGetSession:      Query,
	ServerRefreshSession:  Procedure,
	ServerDeleteSession:   Procedure,
	IdentityResolveHandle: Query,
	RepoGetRecord:         Query,
	RepoCreateRecord:      Procedure,
	RepoDeleteRecord:      Procedure,
	RepoUploadBlob:        Procedure,
	ActorGetProfile:       Query,
	ConvoGetConvo:         Query,
	ConvoListConvos:       Query,
	ConvoGetMessages:      Query,
	ConvoSendMessage:      Procedure,
}

// Record collections and union type tags.
const (
	FeedPostCollection = "app.bsky.feed.post"

	FacetMention = "app.bsky.richtext.facet#mention"
	FacetLink    = "app.bsky.richtext.facet#link"
	FacetTag     = "app.bsky.richtext.facet#tag"

	EmbedImagesType   = "app.bsky.embed.images"
	EmbedExternalType = "app.bsky.embed.external"
	EmbedRecordType   = "app.bsky.embed.record"

	MessageViewType        = "chat.bsky.convo.defs#messageView"
	DeletedMessageViewType = "chat.bsky.convo.defs#deletedMessageView"
)
