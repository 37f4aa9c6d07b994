package telegram

import "context"

// The registry does not record which content category a stored handle
// belongs to, so redemption tries the category senders in a fixed order
// until one succeeds. Each Transport wraps one category sender and
// satisfies the delivery engine's transport contract.

type sendFunc func(ctx context.Context, chatID int64, fileID, filename string) error

type Transport struct {
	kind string
	send sendFunc
}

func (t Transport) Kind() string { return t.kind }

func (t Transport) Send(ctx context.Context, chatID int64, fileID, filename string) error {
	return t.send(ctx, chatID, fileID, filename)
}

// CascadeTransports returns the category transports in delivery order:
// document first (the most common admin upload), then photo, video, audio.
func (c *Client) CascadeTransports() []Transport {
	return []Transport{
		{kind: "document", send: c.SendDocument},
		{kind: "photo", send: c.SendPhoto},
		{kind: "video", send: c.SendVideo},
		{kind: "audio", send: c.SendAudio},
	}
}
