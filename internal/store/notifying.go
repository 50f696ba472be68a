package store

import "context"

// Notifying decorates a Store so every successful write raises a Change on
// the publisher. Other open views use the signal to re-read state.
type Notifying struct {
	Store
	pub Publisher
}

// NewNotifying wraps s. A nil publisher makes the decorator a pass-through.
func NewNotifying(s Store, pub Publisher) *Notifying {
	return &Notifying{Store: s, pub: pub}
}

func (n *Notifying) Set(ctx context.Context, key, value string) error {
	if err := n.Store.Set(ctx, key, value); err != nil {
		return err
	}
	n.publish(key)
	return nil
}

func (n *Notifying) SetMany(ctx context.Context, entries map[string]string) error {
	if err := n.Store.SetMany(ctx, entries); err != nil {
		return err
	}
	n.publish(sortedKeys(entries)...)
	return nil
}

func (n *Notifying) Delete(ctx context.Context, keys ...string) error {
	if err := n.Store.Delete(ctx, keys...); err != nil {
		return err
	}
	n.publish(keys...)
	return nil
}

func (n *Notifying) publish(keys ...string) {
	if n.pub == nil {
		return
	}
	for _, k := range keys {
		n.pub.Publish(Change{Key: k})
	}
}
