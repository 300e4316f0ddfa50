package stocktwits

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Cursors are the opaque paging bounds extracted from a response envelope.
// Next == 0 means there is nothing further to fetch.
type Cursors struct {
	Prev int64
	Next int64
}

// Payload is the parsed form of one response body.
type Payload struct {
	Kind    Kind
	Model   Model
	Results ResultSet
	Cursors *Cursors
	Raw     json.RawMessage
}

// Parser converts a raw response body into a Payload.
type Parser interface {
	Parse(c *Client, op Operation, body []byte) (*Payload, error)
}

// RawParser keeps the body as-is without building models.
type RawParser struct{}

func (RawParser) Parse(_ *Client, op Operation, body []byte) (*Payload, error) {
	return &Payload{Kind: op.Kind, Raw: body}, nil
}

// ParseFunc builds one model instance of a given kind from a decoded JSON
// value.
type ParseFunc func(c *Client, data any) (Model, error)

// ParseListFunc builds a ResultSet of a given kind from a decoded JSON value
// which is either a plain list or a wrapper object with a kind-specific
// collection field.
type ParseListFunc func(c *Client, data any) (ResultSet, error)

// ModelFactory maps a model kind to its parsing implementation. It may be
// mutated at call time to extend or override specific kinds without touching
// the base parsing logic.
type ModelFactory struct {
	mu        sync.RWMutex
	parse     map[Kind]ParseFunc
	parseList map[Kind]ParseListFunc
}

func NewModelFactory() *ModelFactory {
	f := &ModelFactory{
		parse:     make(map[Kind]ParseFunc),
		parseList: make(map[Kind]ParseListFunc),
	}

	f.parse[KindUser] = parseUser
	f.parse[KindMessage] = parseMessage
	f.parse[KindSymbol] = parseSymbol
	f.parse[KindSource] = parseSource
	f.parse[KindSentiment] = parseSentiment
	f.parse[KindEntities] = parseEntities
	f.parse[KindConversation] = parseConversation
	f.parse[KindWatchlist] = parseWatchlist
	f.parse[KindFriendship] = parseFriendship
	f.parse[KindJSON] = parseGeneric
	f.parse[KindIDs] = parseIDs

	f.parseList[KindMessage] = wrappedListParser(KindMessage, "messages")
	f.parseList[KindUser] = wrappedListParser(KindUser, "users")
	f.parseList[KindWatchlist] = wrappedListParser(KindWatchlist, "watchlists")
	f.parseList[KindSymbol] = wrappedListParser(KindSymbol, "symbols")
	f.parseList[KindJSON] = wrappedListParser(KindJSON, "results")

	return f
}

// Register overrides the parser for a kind.
func (f *ModelFactory) Register(kind Kind, fn ParseFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parse[kind] = fn
}

// RegisterList overrides the list parser for a kind.
func (f *ModelFactory) RegisterList(kind Kind, fn ParseListFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parseList[kind] = fn
}

func (f *ModelFactory) Parse(c *Client, kind Kind, data any) (Model, error) {
	f.mu.RLock()
	fn, ok := f.parse[kind]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("stocktwits: no parser registered for kind %q", kind)
	}
	return fn(c, data)
}

func (f *ModelFactory) ParseList(c *Client, kind Kind, data any) (ResultSet, error) {
	f.mu.RLock()
	fn, ok := f.parseList[kind]
	f.mu.RUnlock()
	if ok {
		return fn(c, data)
	}
	return f.genericParseList(c, kind, data)
}

// genericParseList handles the two generic input shapes: a plain sequence
// where null entries are silently skipped, and an id-keyed map where missing
// objects become stub instances carrying only the numeric id. The latter
// preserves positional correspondence for bulk-lookup endpoints returning
// null for unknown ids; map entries are ordered by ascending id.
func (f *ModelFactory) genericParseList(c *Client, kind Kind, data any) (ResultSet, error) {
	var results ResultSet

	switch v := data.(type) {
	case []any:
		for _, obj := range v {
			if obj == nil {
				continue
			}
			model, err := f.Parse(c, kind, obj)
			if err != nil {
				return ResultSet{}, err
			}
			results.Items = append(results.Items, model)
		}
		return results, nil

	case map[string]any:
		idMap, ok := v["id"].(map[string]any)
		if !ok {
			return ResultSet{}, fmt.Errorf("stocktwits: cannot parse %q list from object without a collection field", kind)
		}
		keys := make([]string, 0, len(idMap))
		for key := range idMap {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.ParseInt(keys[i], 10, 64)
			b, _ := strconv.ParseInt(keys[j], 10, 64)
			return a < b
		})
		for _, key := range keys {
			obj := idMap[key]
			if obj == nil {
				id, err := strconv.ParseInt(key, 10, 64)
				if err != nil {
					return ResultSet{}, fmt.Errorf("stocktwits: non-numeric id key %q", key)
				}
				obj = map[string]any{"id": float64(id)}
			}
			model, err := f.Parse(c, kind, obj)
			if err != nil {
				return ResultSet{}, err
			}
			results.Items = append(results.Items, model)
		}
		return results, nil
	}

	return ResultSet{}, fmt.Errorf("stocktwits: cannot parse %q list from %T", kind, data)
}

// wrappedListParser returns a ParseListFunc that accepts either a plain
// sequence or a wrapper object holding the sequence under the given
// collection field. The field is structurally required for the wrapper
// shape.
func wrappedListParser(kind Kind, field string) ParseListFunc {
	return func(c *Client, data any) (ResultSet, error) {
		factory := factoryFor(c)

		items, ok := data.([]any)
		if !ok {
			wrapper, isMap := data.(map[string]any)
			if !isMap {
				return ResultSet{}, fmt.Errorf("stocktwits: cannot parse %q list from %T", kind, data)
			}
			items, ok = wrapper[field].([]any)
			if !ok {
				return ResultSet{}, fmt.Errorf("stocktwits: response has no %q field", field)
			}
		}

		var results ResultSet
		for _, obj := range items {
			if obj == nil {
				continue
			}
			model, err := factory.Parse(c, kind, obj)
			if err != nil {
				return ResultSet{}, err
			}
			results.Items = append(results.Items, model)
		}
		return results, nil
	}
}

// ModelParser builds typed model instances through a ModelFactory.
type ModelParser struct {
	factory *ModelFactory
}

func NewModelParser(factory *ModelFactory) *ModelParser {
	if factory == nil {
		factory = NewModelFactory()
	}
	return &ModelParser{factory: factory}
}

func (p *ModelParser) Factory() *ModelFactory {
	return p.factory
}

func (p *ModelParser) Parse(c *Client, op Operation, body []byte) (*Payload, error) {
	payload := &Payload{
		Kind: op.Kind,
		Raw:  json.RawMessage(body),
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("stocktwits: malformed response body: %w", err)
	}

	if wrapper, ok := data.(map[string]any); ok {
		if envelope, ok := wrapper["cursor"].(map[string]any); ok {
			payload.Cursors = parseCursorEnvelope(envelope)
		}
	}

	if op.List {
		results, err := p.factory.ParseList(c, op.Kind, data)
		if err != nil {
			return nil, err
		}
		payload.Results = results
		return payload, nil
	}

	// Single-object responses are usually wrapped under the kind name,
	// e.g. {"user": {...}} or {"message": {...}}.
	if wrapper, ok := data.(map[string]any); ok {
		if sub, ok := wrapper[string(op.Kind)]; ok && sub != nil {
			data = sub
		}
	}
	model, err := p.factory.Parse(c, op.Kind, data)
	if err != nil {
		return nil, err
	}
	payload.Model = model
	return payload, nil
}

// parseCursorEnvelope maps the service's cursor object to paging bounds:
//
//	{"more": true, "since": 1234, "max": 1000}
//
// "max" is the next older bound, unless "more" is false in which case the
// sequence is exhausted.
func parseCursorEnvelope(envelope map[string]any) *Cursors {
	cursors := &Cursors{}
	if since, ok := envelope["since"].(float64); ok {
		cursors.Prev = int64(since)
	}
	more, _ := envelope["more"].(bool)
	if more {
		if max, ok := envelope["max"].(float64); ok {
			cursors.Next = int64(max)
		}
	}
	return cursors
}

// defaultFactory backs parsing when a model is built without a client.
// Assigned in init rather than in the declaration to avoid an
// initialization cycle through factoryFor.
var defaultFactory *ModelFactory

func init() {
	defaultFactory = NewModelFactory()
}

func factoryFor(c *Client) *ModelFactory {
	if c != nil && c.factory != nil {
		return c.factory
	}
	return defaultFactory
}

const timestampLayout = time.RFC3339 // "2012-08-13T22:10:24Z"

// parseTimestamp is permissive: an unparseable or non-string value yields
// the zero time rather than an error.
func parseTimestamp(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	if ts, err := time.Parse(timestampLayout, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return ts
	}
	return time.Time{}
}

// decodeModel maps the remaining JSON fields onto the model's tagged fields;
// everything unrecognized lands in the model's Extra map. Nil values are
// dropped beforehand so absent and null fields behave the same.
func decodeModel(target any, src map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	cleaned := make(map[string]any, len(src))
	for k, v := range src {
		if v == nil {
			continue
		}
		cleaned[k] = v
	}
	return decoder.Decode(cleaned)
}

func asObject(kind Kind, data any) (map[string]any, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stocktwits: cannot parse %q from %T", kind, data)
	}
	return obj, nil
}

func parseUser(c *Client, data any) (Model, error) {
	obj, err := asObject(KindUser, data)
	if err != nil {
		return nil, err
	}
	user := &User{api: c, raw: obj}
	rest := make(map[string]any, len(obj))
	for k, v := range obj {
		switch k {
		case "created_at":
			user.CreatedAt = parseTimestamp(v)
		case "following":
			// The service sends null instead of false here.
			user.Following = v == true
		case "status":
			if v == nil {
				continue
			}
			model, err := factoryFor(c).Parse(c, KindMessage, v)
			if err != nil {
				return nil, err
			}
			if status, ok := model.(*Message); ok {
				user.Status = status
			}
		default:
			rest[k] = v
		}
	}
	if err := decodeModel(user, rest); err != nil {
		return nil, err
	}
	return user, nil
}

func parseMessage(c *Client, data any) (Model, error) {
	obj, err := asObject(KindMessage, data)
	if err != nil {
		return nil, err
	}
	factory := factoryFor(c)
	message := &Message{api: c, raw: obj}
	rest := make(map[string]any, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		switch k {
		case "created_at":
			message.CreatedAt = parseTimestamp(v)
		case "user":
			model, err := factory.Parse(c, KindUser, v)
			if err != nil {
				return nil, err
			}
			if user, ok := model.(*User); ok {
				message.User = user
			}
		case "source":
			model, err := factory.Parse(c, KindSource, v)
			if err != nil {
				return nil, err
			}
			if source, ok := model.(*Source); ok {
				message.Source = source
			}
		case "symbols":
			symbols, err := factory.ParseList(c, KindSymbol, v)
			if err != nil {
				return nil, err
			}
			message.Symbols = symbols
		case "entities":
			model, err := factory.Parse(c, KindEntities, v)
			if err != nil {
				return nil, err
			}
			if entities, ok := model.(*Entities); ok {
				message.Entities = entities
			}
		case "conversation":
			model, err := factory.Parse(c, KindConversation, v)
			if err != nil {
				return nil, err
			}
			if conversation, ok := model.(*Conversation); ok {
				message.Conversation = conversation
			}
		case "recipient":
			model, err := factory.Parse(c, KindUser, v)
			if err != nil {
				return nil, err
			}
			if recipient, ok := model.(*User); ok {
				message.Recipient = recipient
			}
		case "parent":
			model, err := factory.Parse(c, KindMessage, v)
			if err != nil {
				return nil, err
			}
			if parent, ok := model.(*Message); ok {
				message.Parent = parent
			}
		default:
			rest[k] = v
		}
	}
	if err := decodeModel(message, rest); err != nil {
		return nil, err
	}
	return message, nil
}

func parseSymbol(c *Client, data any) (Model, error) {
	obj, err := asObject(KindSymbol, data)
	if err != nil {
		return nil, err
	}
	symbol := &Symbol{api: c, raw: obj}
	if err := decodeModel(symbol, obj); err != nil {
		return nil, err
	}
	return symbol, nil
}

func parseSource(c *Client, data any) (Model, error) {
	obj, err := asObject(KindSource, data)
	if err != nil {
		return nil, err
	}
	source := &Source{api: c, raw: obj}
	if err := decodeModel(source, obj); err != nil {
		return nil, err
	}
	return source, nil
}

func parseSentiment(c *Client, data any) (Model, error) {
	obj, err := asObject(KindSentiment, data)
	if err != nil {
		return nil, err
	}
	sentiment := &SentimentModel{api: c, raw: obj}
	if err := decodeModel(sentiment, obj); err != nil {
		return nil, err
	}
	return sentiment, nil
}

func parseEntities(c *Client, data any) (Model, error) {
	obj, err := asObject(KindEntities, data)
	if err != nil {
		return nil, err
	}
	entities := &Entities{api: c, raw: obj}
	rest := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == "sentiment" && v != nil {
			model, err := factoryFor(c).Parse(c, KindSentiment, v)
			if err != nil {
				return nil, err
			}
			if sentiment, ok := model.(*SentimentModel); ok {
				entities.Sentiment = sentiment
			}
			continue
		}
		rest[k] = v
	}
	if err := decodeModel(entities, rest); err != nil {
		return nil, err
	}
	return entities, nil
}

func parseConversation(c *Client, data any) (Model, error) {
	obj, err := asObject(KindConversation, data)
	if err != nil {
		return nil, err
	}
	conversation := &Conversation{api: c, raw: obj}
	if err := decodeModel(conversation, obj); err != nil {
		return nil, err
	}
	return conversation, nil
}

func parseWatchlist(c *Client, data any) (Model, error) {
	obj, err := asObject(KindWatchlist, data)
	if err != nil {
		return nil, err
	}
	watchlist := &Watchlist{api: c, raw: obj}
	rest := make(map[string]any, len(obj))
	for k, v := range obj {
		if v == nil {
			continue
		}
		switch k {
		case "created_at":
			watchlist.CreatedAt = parseTimestamp(v)
		case "updated_at":
			watchlist.UpdatedAt = parseTimestamp(v)
		case "symbols":
			symbols, err := factoryFor(c).ParseList(c, KindSymbol, v)
			if err != nil {
				return nil, err
			}
			watchlist.Symbols = symbols
		default:
			rest[k] = v
		}
	}
	if err := decodeModel(watchlist, rest); err != nil {
		return nil, err
	}
	return watchlist, nil
}

// parseFriendship always produces a pair of instances from the two embedded
// relationship objects, source first.
func parseFriendship(c *Client, data any) (Model, error) {
	obj, err := asObject(KindFriendship, data)
	if err != nil {
		return nil, err
	}
	relationship, ok := obj["relationship"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stocktwits: friendship response has no %q field", "relationship")
	}

	parseSide := func(field string) (*Friendship, error) {
		side, ok := relationship[field].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("stocktwits: friendship relationship has no %q field", field)
		}
		friendship := &Friendship{api: c, raw: side}
		if err := decodeModel(friendship, side); err != nil {
			return nil, err
		}
		return friendship, nil
	}

	source, err := parseSide("source")
	if err != nil {
		return nil, err
	}
	target, err := parseSide("target")
	if err != nil {
		return nil, err
	}
	return &FriendshipPair{Source: source, Target: target}, nil
}

func parseGeneric(c *Client, data any) (Model, error) {
	return &Generic{Value: data, api: c}, nil
}

func parseIDs(c *Client, data any) (Model, error) {
	list := &IDList{api: c}

	values, ok := data.([]any)
	if !ok {
		wrapper, isMap := data.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("stocktwits: cannot parse ids from %T", data)
		}
		values, ok = wrapper["ids"].([]any)
		if !ok {
			return nil, fmt.Errorf("stocktwits: response has no %q field", "ids")
		}
	}
	for _, v := range values {
		if id, ok := v.(float64); ok {
			list.IDs = append(list.IDs, int64(id))
		}
	}
	return list, nil
}
