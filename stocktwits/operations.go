package stocktwits

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Operation descriptors for the documented API surface. Streams and graph
// listings page by message id, notifications by opaque cursor, search by
// page number; everything else is a one-shot call.
var (
	opStreamUser = Operation{
		Name:          "streams.user",
		Method:        http.MethodGet,
		Path:          "/streams/user/{id}.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamSymbol = Operation{
		Name:          "streams.symbol",
		Method:        http.MethodGet,
		Path:          "/streams/symbol/{id}.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamFriends = Operation{
		Name:          "streams.friends",
		Method:        http.MethodGet,
		Path:          "/streams/friends.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamMentions = Operation{
		Name:          "streams.mentions",
		Method:        http.MethodGet,
		Path:          "/streams/mentions.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamDirect = Operation{
		Name:          "streams.direct",
		Method:        http.MethodGet,
		Path:          "/streams/direct.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamWatchlist = Operation{
		Name:          "streams.watchlist",
		Method:        http.MethodGet,
		Path:          "/streams/watchlist/{id}.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamTrending = Operation{
		Name:          "streams.trending",
		Method:        http.MethodGet,
		Path:          "/streams/trending.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		Pagination:    PaginateID,
	}
	opStreamSuggested = Operation{
		Name:          "streams.suggested",
		Method:        http.MethodGet,
		Path:          "/streams/suggested.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit", "filter"},
		Pagination:    PaginateID,
	}
	opStreamConversation = Operation{
		Name:          "streams.conversation",
		Method:        http.MethodGet,
		Path:          "/streams/conversation/{id}.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opStreamSymbols = Operation{
		Name:          "streams.symbols",
		Method:        http.MethodGet,
		Path:          "/streams/symbols.json",
		Kind:          KindMessage,
		List:          true,
		AllowedParams: []string{"symbols", "since", "max", "limit", "filter"},
		RequireAuth:   true,
		PartnerLevel:  true,
		Pagination:    PaginateID,
	}

	opNotifications = Operation{
		Name:          "notifications",
		Method:        http.MethodGet,
		Path:          "/notifications.json",
		Kind:          KindJSON,
		List:          true,
		AllowedParams: []string{"cursor", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateCursor,
	}

	opSearch = Operation{
		Name:          "search",
		Method:        http.MethodGet,
		Path:          "/search.json",
		Kind:          KindJSON,
		List:          true,
		AllowedParams: []string{"q", "page"},
		Pagination:    PaginatePage,
	}
	opSearchSymbols = Operation{
		Name:          "search.symbols",
		Method:        http.MethodGet,
		Path:          "/search/symbols.json",
		Kind:          KindSymbol,
		List:          true,
		AllowedParams: []string{"q", "page"},
		Pagination:    PaginatePage,
	}
	opSearchUsers = Operation{
		Name:          "search.users",
		Method:        http.MethodGet,
		Path:          "/search/users.json",
		Kind:          KindUser,
		List:          true,
		AllowedParams: []string{"q", "page"},
		Pagination:    PaginatePage,
	}

	opShowMessage = Operation{
		Name:          "messages.show",
		Method:        http.MethodGet,
		Path:          "/messages/show/{id}.json",
		Kind:          KindMessage,
		AllowedParams: []string{"conversation"},
	}
	opCreateMessage = Operation{
		Name:          "messages.create",
		Method:        http.MethodPost,
		Path:          "/messages/create.json",
		Kind:          KindMessage,
		AllowedParams: []string{"body", "in_reply_to_message_id", "chart", "sentiment"},
		RequireAuth:   true,
	}
	opLikeMessage = Operation{
		Name:          "messages.like",
		Method:        http.MethodPost,
		Path:          "/messages/like.json",
		Kind:          KindMessage,
		AllowedParams: []string{"id"},
		RequireAuth:   true,
	}
	opUnlikeMessage = Operation{
		Name:          "messages.unlike",
		Method:        http.MethodPost,
		Path:          "/messages/unlike.json",
		Kind:          KindMessage,
		AllowedParams: []string{"id"},
		RequireAuth:   true,
	}

	opCreateFriendship = Operation{
		Name:        "friendships.create",
		Method:      http.MethodPost,
		Path:        "/friendships/create/{id}.json",
		Kind:        KindFriendship,
		RequireAuth: true,
	}
	opDestroyFriendship = Operation{
		Name:        "friendships.destroy",
		Method:      http.MethodPost,
		Path:        "/friendships/destroy/{id}.json",
		Kind:        KindFriendship,
		RequireAuth: true,
	}

	opGraphFollowers = Operation{
		Name:          "graph.followers",
		Method:        http.MethodGet,
		Path:          "/graph/followers/{id}.json",
		Kind:          KindUser,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		PartnerLevel:  true,
		Pagination:    PaginateID,
	}
	opGraphFollowing = Operation{
		Name:          "graph.following",
		Method:        http.MethodGet,
		Path:          "/graph/following/{id}.json",
		Kind:          KindUser,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		PartnerLevel:  true,
		Pagination:    PaginateID,
	}
	opGraphBlocking = Operation{
		Name:          "graph.blocking",
		Method:        http.MethodGet,
		Path:          "/graph/blocking.json",
		Kind:          KindUser,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}
	opGraphMuting = Operation{
		Name:          "graph.muting",
		Method:        http.MethodGet,
		Path:          "/graph/muting.json",
		Kind:          KindUser,
		List:          true,
		AllowedParams: []string{"since", "max", "limit"},
		RequireAuth:   true,
		Pagination:    PaginateID,
	}

	opCreateBlock = Operation{
		Name:        "blocks.create",
		Method:      http.MethodPost,
		Path:        "/blocks/create/{id}.json",
		Kind:        KindUser,
		RequireAuth: true,
	}
	opDestroyBlock = Operation{
		Name:        "blocks.destroy",
		Method:      http.MethodPost,
		Path:        "/blocks/destroy/{id}.json",
		Kind:        KindUser,
		RequireAuth: true,
	}
	opCreateMute = Operation{
		Name:        "mutes.create",
		Method:      http.MethodPost,
		Path:        "/mutes/create/{id}.json",
		Kind:        KindUser,
		RequireAuth: true,
	}
	opDestroyMute = Operation{
		Name:        "mutes.destroy",
		Method:      http.MethodPost,
		Path:        "/mutes/destroy/{id}.json",
		Kind:        KindUser,
		RequireAuth: true,
	}

	opWatchlists = Operation{
		Name:        "watchlists.index",
		Method:      http.MethodGet,
		Path:        "/watchlists.json",
		Kind:        KindWatchlist,
		List:        true,
		RequireAuth: true,
	}
	opShowWatchlist = Operation{
		Name:        "watchlists.show",
		Method:      http.MethodGet,
		Path:        "/watchlists/show/{id}.json",
		Kind:        KindWatchlist,
		RequireAuth: true,
	}
	opCreateWatchlist = Operation{
		Name:          "watchlists.create",
		Method:        http.MethodPost,
		Path:          "/watchlists/create.json",
		Kind:          KindWatchlist,
		AllowedParams: []string{"name"},
		RequireAuth:   true,
	}
	opUpdateWatchlist = Operation{
		Name:          "watchlists.update",
		Method:        http.MethodPost,
		Path:          "/watchlists/update/{id}.json",
		Kind:          KindWatchlist,
		AllowedParams: []string{"name"},
		RequireAuth:   true,
	}
	opDestroyWatchlist = Operation{
		Name:        "watchlists.destroy",
		Method:      http.MethodPost,
		Path:        "/watchlists/destroy/{id}.json",
		Kind:        KindWatchlist,
		RequireAuth: true,
	}
	opWatchlistAddSymbols = Operation{
		Name:          "watchlists.symbols.create",
		Method:        http.MethodPost,
		Path:          "/watchlists/{id}/symbols/create.json",
		Kind:          KindWatchlist,
		AllowedParams: []string{"symbols"},
		RequireAuth:   true,
	}
	opWatchlistRemoveSymbols = Operation{
		Name:          "watchlists.symbols.destroy",
		Method:        http.MethodPost,
		Path:          "/watchlists/{id}/symbols/destroy.json",
		Kind:          KindWatchlist,
		AllowedParams: []string{"symbols"},
		RequireAuth:   true,
	}

	opVerifyAccount = Operation{
		Name:        "account.verify",
		Method:      http.MethodGet,
		Path:        "/account/verify.json",
		Kind:        KindUser,
		RequireAuth: true,
	}
	opUpdateAccount = Operation{
		Name:          "account.update",
		Method:        http.MethodPost,
		Path:          "/account/update.json",
		Kind:          KindUser,
		AllowedParams: []string{"name", "email", "username"},
		RequireAuth:   true,
	}
	opAccountPreferences = Operation{
		Name:        "account.preferences",
		Method:      http.MethodGet,
		Path:        "/account/preferences.json",
		Kind:        KindJSON,
		RequireAuth: true,
	}

	opTrendingSymbols = Operation{
		Name:          "trending.symbols",
		Method:        http.MethodGet,
		Path:          "/trending/symbols.json",
		Kind:          KindSymbol,
		List:          true,
		AllowedParams: []string{"limit"},
	}
	opTrendingEquities = Operation{
		Name:          "trending.symbols.equities",
		Method:        http.MethodGet,
		Path:          "/trending/symbols/equities.json",
		Kind:          KindSymbol,
		List:          true,
		AllowedParams: []string{"limit"},
	}

	opDeletedMessages = Operation{
		Name:          "deletions.messages",
		Method:        http.MethodGet,
		Path:          "/deletions/messages.json",
		Kind:          KindIDs,
		AllowedParams: []string{"since", "max"},
		RequireAuth:   true,
		PartnerLevel:  true,
	}
	opDeletedUsers = Operation{
		Name:          "deletions.users",
		Method:        http.MethodGet,
		Path:          "/deletions/users.json",
		Kind:          KindIDs,
		AllowedParams: []string{"since", "max"},
		RequireAuth:   true,
		PartnerLevel:  true,
	}
)

func idArg(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// StreamUser returns the bound stream of a user's messages, addressed by
// numeric id or username.
func (c *Client) StreamUser(id string) *BoundOperation {
	return c.bind(opStreamUser, map[string]string{"id": id}, nil)
}

// StreamSymbol returns the bound message stream of a single symbol.
func (c *Client) StreamSymbol(symbol string) *BoundOperation {
	return c.bind(opStreamSymbol, map[string]string{"id": symbol}, nil)
}

// StreamFriends returns the bound stream of messages from users the
// authenticated user follows.
func (c *Client) StreamFriends() *BoundOperation {
	return c.bind(opStreamFriends, nil, nil)
}

// StreamMentions returns the bound stream of messages mentioning the
// authenticated user.
func (c *Client) StreamMentions() *BoundOperation {
	return c.bind(opStreamMentions, nil, nil)
}

// StreamDirect returns the bound stream of the authenticated user's direct
// messages.
func (c *Client) StreamDirect() *BoundOperation {
	return c.bind(opStreamDirect, nil, nil)
}

// StreamWatchlist returns the bound stream of messages for the symbols on
// one of the authenticated user's watchlists.
func (c *Client) StreamWatchlist(watchlistID int64) *BoundOperation {
	return c.bind(opStreamWatchlist, idArg(watchlistID), nil)
}

// StreamTrending returns the bound stream of messages for currently
// trending symbols.
func (c *Client) StreamTrending() *BoundOperation {
	return c.bind(opStreamTrending, nil, nil)
}

// StreamSuggested returns the bound stream of messages from suggested
// accounts.
func (c *Client) StreamSuggested() *BoundOperation {
	return c.bind(opStreamSuggested, nil, nil)
}

// StreamConversation returns the bound reply stream of a message.
func (c *Client) StreamConversation(messageID int64) *BoundOperation {
	return c.bind(opStreamConversation, idArg(messageID), nil)
}

// StreamSymbols returns the bound combined stream of up to ten symbols.
// Partner-level endpoint.
func (c *Client) StreamSymbols(symbols []string) (*BoundOperation, error) {
	if len(symbols) == 0 || len(symbols) > 10 {
		return nil, fmt.Errorf("stocktwits: combined stream takes 1 to 10 symbols, got %d", len(symbols))
	}
	return c.bind(opStreamSymbols, nil, map[string]string{
		"symbols": joinComma(symbols),
	}), nil
}

// Notifications returns the bound, cursor-paginated stream of the
// authenticated user's notifications.
func (c *Client) Notifications() *BoundOperation {
	return c.bind(opNotifications, nil, nil)
}

// Search returns the bound combined symbol and user search for a query.
func (c *Client) Search(query string) *BoundOperation {
	return c.bind(opSearch, nil, map[string]string{"q": query})
}

// SearchSymbols returns the bound symbol search for a query.
func (c *Client) SearchSymbols(query string) *BoundOperation {
	return c.bind(opSearchSymbols, nil, map[string]string{"q": query})
}

// SearchUsers returns the bound user search for a query.
func (c *Client) SearchUsers(query string) *BoundOperation {
	return c.bind(opSearchUsers, nil, map[string]string{"q": query})
}

// Followers returns the bound follower listing of a user. Partner-level
// endpoint.
func (c *Client) Followers(userID int64) *BoundOperation {
	return c.bind(opGraphFollowers, idArg(userID), nil)
}

// FollowingUsers returns the bound listing of accounts a user follows.
// Partner-level endpoint.
func (c *Client) FollowingUsers(userID int64) *BoundOperation {
	return c.bind(opGraphFollowing, idArg(userID), nil)
}

// BlockedUsers returns the bound listing of accounts the authenticated
// user blocks.
func (c *Client) BlockedUsers() *BoundOperation {
	return c.bind(opGraphBlocking, nil, nil)
}

// MutedUsers returns the bound listing of accounts the authenticated user
// mutes.
func (c *Client) MutedUsers() *BoundOperation {
	return c.bind(opGraphMuting, nil, nil)
}

// ShowMessage fetches a single message.
func (c *Client) ShowMessage(ctx context.Context, messageID int64) (*Message, error) {
	return c.singleMessage(ctx, opShowMessage, idArg(messageID), nil)
}

// CreateMessage posts a new message. Optional parameters (reply target,
// sentiment) go through opts.
func (c *Client) CreateMessage(ctx context.Context, body string, opts map[string]string) (*Message, error) {
	params := map[string]string{"body": body}
	for k, v := range opts {
		params[k] = v
	}
	return c.singleMessage(ctx, opCreateMessage, nil, params)
}

// LikeMessage likes a message on behalf of the authenticated user.
func (c *Client) LikeMessage(ctx context.Context, messageID int64) (*Message, error) {
	return c.singleMessage(ctx, opLikeMessage, nil, idArg(messageID))
}

// UnlikeMessage removes the authenticated user's like from a message.
func (c *Client) UnlikeMessage(ctx context.Context, messageID int64) (*Message, error) {
	return c.singleMessage(ctx, opUnlikeMessage, nil, idArg(messageID))
}

// CreateFriendship follows a user. The response always carries both sides
// of the relationship, source first.
func (c *Client) CreateFriendship(ctx context.Context, userID int64) (*FriendshipPair, error) {
	return c.friendship(ctx, opCreateFriendship, userID)
}

// DestroyFriendship unfollows a user.
func (c *Client) DestroyFriendship(ctx context.Context, userID int64) (*FriendshipPair, error) {
	return c.friendship(ctx, opDestroyFriendship, userID)
}

// CreateBlock blocks a user.
func (c *Client) CreateBlock(ctx context.Context, userID int64) (*User, error) {
	return c.singleUser(ctx, opCreateBlock, idArg(userID), nil)
}

// DestroyBlock unblocks a user.
func (c *Client) DestroyBlock(ctx context.Context, userID int64) (*User, error) {
	return c.singleUser(ctx, opDestroyBlock, idArg(userID), nil)
}

// CreateMute mutes a user.
func (c *Client) CreateMute(ctx context.Context, userID int64) (*User, error) {
	return c.singleUser(ctx, opCreateMute, idArg(userID), nil)
}

// DestroyMute unmutes a user.
func (c *Client) DestroyMute(ctx context.Context, userID int64) (*User, error) {
	return c.singleUser(ctx, opDestroyMute, idArg(userID), nil)
}

// Watchlists lists the authenticated user's watchlists.
func (c *Client) Watchlists(ctx context.Context) ([]*Watchlist, error) {
	payload, err := c.call(ctx, opWatchlists, nil, nil)
	if err != nil {
		return nil, err
	}
	watchlists := make([]*Watchlist, 0, payload.Results.Len())
	for _, item := range payload.Results.Items {
		if w, ok := item.(*Watchlist); ok {
			watchlists = append(watchlists, w)
		}
	}
	return watchlists, nil
}

// ShowWatchlist fetches one watchlist with its symbols.
func (c *Client) ShowWatchlist(ctx context.Context, watchlistID int64) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opShowWatchlist, idArg(watchlistID), nil)
}

// CreateWatchlist creates a new named watchlist.
func (c *Client) CreateWatchlist(ctx context.Context, name string) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opCreateWatchlist, nil, map[string]string{"name": name})
}

// UpdateWatchlist renames a watchlist.
func (c *Client) UpdateWatchlist(ctx context.Context, watchlistID int64, name string) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opUpdateWatchlist, idArg(watchlistID), map[string]string{"name": name})
}

// DestroyWatchlist deletes a watchlist and returns its last state.
func (c *Client) DestroyWatchlist(ctx context.Context, watchlistID int64) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opDestroyWatchlist, idArg(watchlistID), nil)
}

// AddToWatchlist adds symbols to a watchlist.
func (c *Client) AddToWatchlist(ctx context.Context, watchlistID int64, symbols []string) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opWatchlistAddSymbols, idArg(watchlistID), map[string]string{
		"symbols": joinComma(symbols),
	})
}

// RemoveFromWatchlist removes symbols from a watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, watchlistID int64, symbols []string) (*Watchlist, error) {
	return c.singleWatchlist(ctx, opWatchlistRemoveSymbols, idArg(watchlistID), map[string]string{
		"symbols": joinComma(symbols),
	})
}

// VerifyAccount checks the attached credential. An unauthorized response is
// reported as (nil, false, nil) rather than an error; any other failure is
// returned as-is.
func (c *Client) VerifyAccount(ctx context.Context) (*User, bool, error) {
	user, err := c.singleUser(ctx, opVerifyAccount, nil, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

// UpdateAccount updates the authenticated user's profile fields.
func (c *Client) UpdateAccount(ctx context.Context, fields map[string]string) (*User, error) {
	return c.singleUser(ctx, opUpdateAccount, nil, fields)
}

// AccountPreferences fetches the authenticated user's preference document.
func (c *Client) AccountPreferences(ctx context.Context) (map[string]any, error) {
	payload, err := c.call(ctx, opAccountPreferences, nil, nil)
	if err != nil {
		return nil, err
	}
	if generic, ok := payload.Model.(*Generic); ok {
		if obj, ok := generic.Value.(map[string]any); ok {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("stocktwits: unexpected preferences payload")
}

// TrendingSymbols returns the currently trending symbols across all
// instrument types.
func (c *Client) TrendingSymbols(ctx context.Context) (ResultSet, error) {
	return c.symbolList(ctx, opTrendingSymbols)
}

// TrendingEquities returns the currently trending equity symbols.
func (c *Client) TrendingEquities(ctx context.Context) (ResultSet, error) {
	return c.symbolList(ctx, opTrendingEquities)
}

// DeletedMessages returns ids of recently deleted messages. Partner-level
// endpoint.
func (c *Client) DeletedMessages(ctx context.Context) ([]int64, error) {
	return c.idList(ctx, opDeletedMessages)
}

// DeletedUsers returns ids of recently deleted users. Partner-level
// endpoint.
func (c *Client) DeletedUsers(ctx context.Context) ([]int64, error) {
	return c.idList(ctx, opDeletedUsers)
}

func (c *Client) singleMessage(ctx context.Context, op Operation, pathArgs, params map[string]string) (*Message, error) {
	payload, err := c.call(ctx, op, pathArgs, params)
	if err != nil {
		return nil, err
	}
	message, ok := payload.Model.(*Message)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, op.Name)
	}
	return message, nil
}

func (c *Client) singleUser(ctx context.Context, op Operation, pathArgs, params map[string]string) (*User, error) {
	payload, err := c.call(ctx, op, pathArgs, params)
	if err != nil {
		return nil, err
	}
	user, ok := payload.Model.(*User)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, op.Name)
	}
	return user, nil
}

func (c *Client) singleWatchlist(ctx context.Context, op Operation, pathArgs, params map[string]string) (*Watchlist, error) {
	payload, err := c.call(ctx, op, pathArgs, params)
	if err != nil {
		return nil, err
	}
	watchlist, ok := payload.Model.(*Watchlist)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, op.Name)
	}
	return watchlist, nil
}

func (c *Client) friendship(ctx context.Context, op Operation, userID int64) (*FriendshipPair, error) {
	payload, err := c.call(ctx, op, idArg(userID), nil)
	if err != nil {
		return nil, err
	}
	pair, ok := payload.Model.(*FriendshipPair)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, op.Name)
	}
	return pair, nil
}

func (c *Client) symbolList(ctx context.Context, op Operation) (ResultSet, error) {
	payload, err := c.call(ctx, op, nil, nil)
	if err != nil {
		return ResultSet{}, err
	}
	return payload.Results, nil
}

func (c *Client) idList(ctx context.Context, op Operation) ([]int64, error) {
	payload, err := c.call(ctx, op, nil, nil)
	if err != nil {
		return nil, err
	}
	list, ok := payload.Model.(*IDList)
	if !ok {
		return nil, fmt.Errorf("stocktwits: unexpected model %T from %s", payload.Model, op.Name)
	}
	return list.IDs, nil
}

func joinComma(values []string) string {
	return strings.Join(values, ",")
}
