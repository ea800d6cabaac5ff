package model

// User represents a registered account. The ID is an opaque identifier issued
// by the identity layer; profile fields carry no domain behavior and are
// passed through unchanged.
type User struct {
	ID      string
	Name    string
	Surname string
	Sex     string
	Faculty string
	Group   string
}

// Subscription links a subscriber to a channel owner. Subscriptions are
// consumed read-only by feed assembly.
type Subscription struct {
	SubscriberID string
	ChannelID    string
}
