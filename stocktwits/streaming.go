package stocktwits

import "context"

// StreamListener receives items from a live message stream.
type StreamListener interface {
	OnMessage(message *Message)
	OnError(err error)
}

// LiveStream is a placeholder for the websocket transport the service
// exposes to partner applications. The polling API surface is unaffected;
// Run reports ErrStreamingUnsupported until a transport exists.
type LiveStream struct {
	client   *Client
	listener StreamListener
}

func NewLiveStream(client *Client, listener StreamListener) *LiveStream {
	return &LiveStream{client: client, listener: listener}
}

func (s *LiveStream) Run(_ context.Context) error {
	return ErrStreamingUnsupported
}
