package lexicon

import "encoding/json"

// ErrorBody is the JSON body of a non-2xx XRPC response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type CreateSessionInput struct {
	Identifier      string `json:"identifier"`
	Password        string `json:"password"`
	AuthFactorToken string `json:"authFactorToken,omitempty"`
}

// SessionOutput is returned by createSession, getSession and
// refreshSession. getSession leaves the token fields empty.
type SessionOutput struct {
	AccessJwt  string `json:"accessJwt,omitempty"`
	RefreshJwt string `json:"refreshJwt,omitempty"`
	Handle     string `json:"handle"`
	Did        string `json:"did"`
	Email      string `json:"email,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}

type ResolveHandleOutput struct {
	Did string `json:"did"`
}

type StrongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type GetRecordOutput struct {
	URI   string          `json:"uri"`
	CID   string          `json:"cid,omitempty"`
	Value json.RawMessage `json:"value"`
}

type CreateRecordInput struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Rkey       string `json:"rkey,omitempty"`
	Record     any    `json:"record"`
}

type CreateRecordOutput struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type DeleteRecordInput struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Rkey       string `json:"rkey"`
}

type Link struct {
	Link string `json:"$link"`
}

// BlobRef points at an uploaded blob.
type BlobRef struct {
	Type     string `json:"$type"`
	Ref      Link   `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

type UploadBlobOutput struct {
	Blob BlobRef `json:"blob"`
}

type ProfileViewDetailed struct {
	Did            string `json:"did"`
	Handle         string `json:"handle"`
	DisplayName    string `json:"displayName,omitempty"`
	Description    string `json:"description,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	Banner         string `json:"banner,omitempty"`
	FollowersCount int64  `json:"followersCount,omitempty"`
	FollowsCount   int64  `json:"followsCount,omitempty"`
	PostsCount     int64  `json:"postsCount,omitempty"`
	IndexedAt      string `json:"indexedAt,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

type ProfileViewBasic struct {
	Did         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is the union of mention, link and tag features; Type
// selects which of the remaining fields is set.
type FacetFeature struct {
	Type string `json:"$type"`
	Did  string `json:"did,omitempty"`
	URI  string `json:"uri,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

type Facet struct {
	Index    ByteSlice      `json:"index"`
	Features []FacetFeature `json:"features"`
}

type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

// FeedPost is the app.bsky.feed.post record.
type FeedPost struct {
	Type      string          `json:"$type"`
	Text      string          `json:"text"`
	Facets    []Facet         `json:"facets,omitempty"`
	Langs     []string        `json:"langs,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Reply     *ReplyRef       `json:"reply,omitempty"`
	Embed     json.RawMessage `json:"embed,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

type AspectRatio struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type EmbedImage struct {
	Image       BlobRef      `json:"image"`
	Alt         string       `json:"alt"`
	AspectRatio *AspectRatio `json:"aspectRatio,omitempty"`
}

type EmbedImages struct {
	Type   string       `json:"$type"`
	Images []EmbedImage `json:"images"`
}

type ExternalLink struct {
	URI         string   `json:"uri"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumb       *BlobRef `json:"thumb,omitempty"`
}

type EmbedExternal struct {
	Type     string       `json:"$type"`
	External ExternalLink `json:"external"`
}

type EmbedRecord struct {
	Type   string    `json:"$type"`
	Record StrongRef `json:"record"`
}

type ConvoView struct {
	ID          string             `json:"id"`
	Rev         string             `json:"rev"`
	Members     []ProfileViewBasic `json:"members"`
	LastMessage json.RawMessage    `json:"lastMessage,omitempty"`
	Muted       bool               `json:"muted"`
	UnreadCount int                `json:"unreadCount"`
}

type GetConvoOutput struct {
	Convo ConvoView `json:"convo"`
}

type ListConvosOutput struct {
	Cursor string      `json:"cursor,omitempty"`
	Convos []ConvoView `json:"convos"`
}

type MessageViewSender struct {
	Did string `json:"did"`
}

// MessageView is either a messageView or a deletedMessageView; the
// latter carries no text.
type MessageView struct {
	Type   string            `json:"$type"`
	ID     string            `json:"id"`
	Rev    string            `json:"rev"`
	Text   string            `json:"text,omitempty"`
	Facets []Facet           `json:"facets,omitempty"`
	Embed  json.RawMessage   `json:"embed,omitempty"`
	Sender MessageViewSender `json:"sender"`
	SentAt string            `json:"sentAt"`
}

type GetMessagesOutput struct {
	Cursor   string        `json:"cursor,omitempty"`
	Messages []MessageView `json:"messages"`
}

type MessageInput struct {
	Text   string          `json:"text"`
	Facets []Facet         `json:"facets,omitempty"`
	Embed  json.RawMessage `json:"embed,omitempty"`
}

type SendMessageInput struct {
	ConvoID string       `json:"convoId"`
	Message MessageInput `json:"message"`
}
