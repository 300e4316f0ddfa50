package stocktwits

import (
	"context"
	"strconv"
	"time"
)

// Kind tags a model type for the parsing registry.
type Kind string

const (
	KindJSON         Kind = "json"
	KindUser         Kind = "user"
	KindMessage      Kind = "message"
	KindSymbol       Kind = "symbol"
	KindSource       Kind = "source"
	KindEntities     Kind = "entities"
	KindConversation Kind = "conversation"
	KindWatchlist    Kind = "watchlist"
	KindFriendship   Kind = "friendship"
	KindSentiment    Kind = "sentiment"
	KindIDs          Kind = "ids"
)

// Model is one typed value parsed from a JSON object. Implementations keep a
// non-owning back-reference to the client that produced them so attached
// actions (follow, like, destroy) can reach the API.
type Model interface {
	ModelKind() Kind
	// ItemID returns the numeric id of the item and whether it has one.
	ItemID() (int64, bool)
}

// ResultSet is an ordered collection of parsed models with derived id
// bounds. MaxID is the smallest contained id minus one, SinceID the greatest
// contained id; both are computed lazily from id-bearing items only and can
// be overridden by the caller.
type ResultSet struct {
	Items []Model

	maxIDOverride   *int64
	sinceIDOverride *int64
}

func (r *ResultSet) Len() int {
	return len(r.Items)
}

func (r *ResultSet) SetMaxID(maxID int64) {
	r.maxIDOverride = &maxID
}

func (r *ResultSet) SetSinceID(sinceID int64) {
	r.sinceIDOverride = &sinceID
}

func (r *ResultSet) ids() []int64 {
	var ids []int64
	for _, item := range r.Items {
		if id, ok := item.ItemID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// MaxID reports the upper bound for fetching the next, older chunk.
func (r *ResultSet) MaxID() (int64, bool) {
	if r.maxIDOverride != nil {
		return *r.maxIDOverride, true
	}
	ids := r.ids()
	if len(ids) == 0 {
		return 0, false
	}
	min := ids[0]
	for _, id := range ids[1:] {
		if id < min {
			min = id
		}
	}
	return min - 1, true
}

// SinceID reports the lower bound for fetching newer items.
func (r *ResultSet) SinceID() (int64, bool) {
	if r.sinceIDOverride != nil {
		return *r.sinceIDOverride, true
	}
	ids := r.ids()
	if len(ids) == 0 {
		return 0, false
	}
	max := ids[0]
	for _, id := range ids[1:] {
		if id > max {
			max = id
		}
	}
	return max, true
}

// User is a StockTwits account.
type User struct {
	ID           int64  `mapstructure:"id"`
	Username     string `mapstructure:"username"`
	Name         string `mapstructure:"name"`
	AvatarURL    string `mapstructure:"avatar_url"`
	AvatarURLSSL string `mapstructure:"avatar_url_ssl"`
	Identity     string `mapstructure:"identity"`
	Official     bool   `mapstructure:"official"`

	// Following is whether the authenticated user follows this one. The
	// service sends null instead of false; both coerce to false.
	Following bool      `mapstructure:"-"`
	CreatedAt time.Time `mapstructure:"-"`
	Status    *Message  `mapstructure:"-"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (u *User) ModelKind() Kind { return KindUser }

func (u *User) ItemID() (int64, bool) { return u.ID, u.ID != 0 }

// Raw returns the original JSON object the user was parsed from.
func (u *User) Raw() map[string]any { return u.raw }

// Follow makes the authenticated user follow this user.
func (u *User) Follow(ctx context.Context) error {
	if _, err := u.api.CreateFriendship(ctx, u.ID); err != nil {
		return err
	}
	u.Following = true
	return nil
}

// Unfollow makes the authenticated user unfollow this user.
func (u *User) Unfollow(ctx context.Context) error {
	if _, err := u.api.DestroyFriendship(ctx, u.ID); err != nil {
		return err
	}
	u.Following = false
	return nil
}

// Timeline returns the bound stream operation for this user's messages,
// ready to be wrapped in a Cursor.
func (u *User) Timeline() *BoundOperation {
	return u.api.StreamUser(strconv.FormatInt(u.ID, 10))
}

// Message is one StockTwits message.
type Message struct {
	ID   int64  `mapstructure:"id"`
	Body string `mapstructure:"body"`

	CreatedAt    time.Time     `mapstructure:"-"`
	User         *User         `mapstructure:"-"`
	Source       *Source       `mapstructure:"-"`
	Symbols      ResultSet     `mapstructure:"-"`
	Entities     *Entities     `mapstructure:"-"`
	Conversation *Conversation `mapstructure:"-"`
	Recipient    *User         `mapstructure:"-"`
	Parent       *Message      `mapstructure:"-"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (m *Message) ModelKind() Kind { return KindMessage }

func (m *Message) ItemID() (int64, bool) { return m.ID, m.ID != 0 }

func (m *Message) Raw() map[string]any { return m.raw }

// Like marks this message as liked by the authenticated user.
func (m *Message) Like(ctx context.Context) (*Message, error) {
	return m.api.LikeMessage(ctx, m.ID)
}

// Unlike removes the authenticated user's like from this message.
func (m *Message) Unlike(ctx context.Context) (*Message, error) {
	return m.api.UnlikeMessage(ctx, m.ID)
}

// Show refetches this message from the API.
func (m *Message) Show(ctx context.Context) (*Message, error) {
	return m.api.ShowMessage(ctx, m.ID)
}

// Symbol is a tradeable instrument as StockTwits knows it.
type Symbol struct {
	ID     int64  `mapstructure:"id"`
	Symbol string `mapstructure:"symbol"`
	Title  string `mapstructure:"title"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (s *Symbol) ModelKind() Kind { return KindSymbol }

func (s *Symbol) ItemID() (int64, bool) { return s.ID, s.ID != 0 }

func (s *Symbol) Raw() map[string]any { return s.raw }

// Sentiment returns the message sentiment stats for this symbol.
func (s *Symbol) Sentiment(ctx context.Context) (*SentimentModel, error) {
	return s.api.SymbolSentiment(ctx, s.Symbol)
}

// Source is the application a message was posted from.
type Source struct {
	ID    int64  `mapstructure:"id"`
	Title string `mapstructure:"title"`
	URL   string `mapstructure:"url"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (s *Source) ModelKind() Kind { return KindSource }

func (s *Source) ItemID() (int64, bool) { return s.ID, s.ID != 0 }

func (s *Source) Raw() map[string]any { return s.raw }

// SentimentModel is a sentiment reading, either embedded in message entities
// or returned by the symbol sentiment endpoint.
type SentimentModel struct {
	Basic string `mapstructure:"basic"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (s *SentimentModel) ModelKind() Kind { return KindSentiment }

func (s *SentimentModel) ItemID() (int64, bool) { return 0, false }

func (s *SentimentModel) Raw() map[string]any { return s.raw }

// Entities holds the structured extras of a message.
type Entities struct {
	Sentiment *SentimentModel `mapstructure:"-"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (e *Entities) ModelKind() Kind { return KindEntities }

func (e *Entities) ItemID() (int64, bool) { return 0, false }

func (e *Entities) Raw() map[string]any { return e.raw }

// Conversation links a message into its reply thread.
type Conversation struct {
	ParentMessageID    int64 `mapstructure:"parent_message_id"`
	InReplyToMessageID int64 `mapstructure:"in_reply_to_message_id"`
	Parent             bool  `mapstructure:"parent"`
	Replies            int   `mapstructure:"replies"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (c *Conversation) ModelKind() Kind { return KindConversation }

func (c *Conversation) ItemID() (int64, bool) { return 0, false }

func (c *Conversation) Raw() map[string]any { return c.raw }

// Watchlist is a named list of symbols owned by the authenticated user.
type Watchlist struct {
	ID   int64  `mapstructure:"id"`
	Name string `mapstructure:"name"`

	CreatedAt time.Time `mapstructure:"-"`
	UpdatedAt time.Time `mapstructure:"-"`
	Symbols   ResultSet `mapstructure:"-"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (w *Watchlist) ModelKind() Kind { return KindWatchlist }

func (w *Watchlist) ItemID() (int64, bool) { return w.ID, w.ID != 0 }

func (w *Watchlist) Raw() map[string]any { return w.raw }

// Update renames this watchlist.
func (w *Watchlist) Update(ctx context.Context, name string) (*Watchlist, error) {
	updated, err := w.api.UpdateWatchlist(ctx, w.ID, name)
	if err != nil {
		return nil, err
	}
	w.Name = updated.Name
	return updated, nil
}

// Destroy deletes this watchlist.
func (w *Watchlist) Destroy(ctx context.Context) error {
	_, err := w.api.DestroyWatchlist(ctx, w.ID)
	return err
}

// AddSymbols adds the given symbols to this watchlist.
func (w *Watchlist) AddSymbols(ctx context.Context, symbols []string) (*Watchlist, error) {
	return w.api.AddToWatchlist(ctx, w.ID, symbols)
}

// RemoveSymbols removes the given symbols from this watchlist.
func (w *Watchlist) RemoveSymbols(ctx context.Context, symbols []string) (*Watchlist, error) {
	return w.api.RemoveFromWatchlist(ctx, w.ID, symbols)
}

// Friendship is one side of a relationship between two users.
type Friendship struct {
	ID         int64  `mapstructure:"id"`
	Username   string `mapstructure:"username"`
	Following  bool   `mapstructure:"following"`
	FollowedBy bool   `mapstructure:"followed_by"`

	Extra map[string]any `mapstructure:",remain"`

	api *Client
	raw map[string]any
}

func (f *Friendship) ModelKind() Kind { return KindFriendship }

func (f *Friendship) ItemID() (int64, bool) { return f.ID, f.ID != 0 }

func (f *Friendship) Raw() map[string]any { return f.raw }

// FriendshipPair is the result of parsing a relationship document. Parsing
// always produces the pair, source first, never a single instance.
type FriendshipPair struct {
	Source *Friendship
	Target *Friendship
}

func (p *FriendshipPair) ModelKind() Kind { return KindFriendship }

func (p *FriendshipPair) ItemID() (int64, bool) { return 0, false }

// Generic is the schema-less model used for payload kinds without a
// dedicated type. It keeps the decoded JSON value as-is.
type Generic struct {
	Value any

	api *Client
}

func (g *Generic) ModelKind() Kind { return KindJSON }

func (g *Generic) ItemID() (int64, bool) {
	obj, ok := g.Value.(map[string]any)
	if !ok {
		return 0, false
	}
	id, ok := obj["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(id), true
}

// IDList is a bare list of numeric ids.
type IDList struct {
	IDs []int64

	api *Client
}

func (l *IDList) ModelKind() Kind { return KindIDs }

func (l *IDList) ItemID() (int64, bool) { return 0, false }
