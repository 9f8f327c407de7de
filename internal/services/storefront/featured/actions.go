package featured

import "context"

// Notification is a transient, user-visible message.
type Notification struct {
	Title       string
	Description string
}

// NotificationSink displays notifications. Delivery is fire-and-forget.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification)
}

// NotificationSinkFunc adapts a function to NotificationSink.
type NotificationSinkFunc func(ctx context.Context, n Notification)

// Notify calls f.
func (f NotificationSinkFunc) Notify(ctx context.Context, n Notification) {
	if f != nil {
		f(ctx, n)
	}
}

// Outcome tells the calling shell how to finish the triggering event.
type Outcome struct {
	// SuppressDefault asks the shell not to perform the trigger's default
	// navigation.
	SuppressDefault bool
}

// Actions holds the section's interaction handlers. Neither handler mutates
// cart or wishlist state; the notification is the whole effect.
type Actions struct {
	Sink NotificationSink
	Copy Copy
}

// AddToCart announces that p was added to the cart.
func (a Actions) AddToCart(ctx context.Context, p Product) Outcome {
	a.notify(ctx, a.Copy.CartNotification(p.Name))
	return Outcome{SuppressDefault: true}
}

// AddToWishlist announces that p was added to the wishlist.
func (a Actions) AddToWishlist(ctx context.Context, p Product) Outcome {
	a.notify(ctx, a.Copy.WishlistNotification(p.Name))
	return Outcome{SuppressDefault: true}
}

// Run dispatches kind to its handler. Unknown kinds do nothing and leave the
// default behavior alone.
func (a Actions) Run(ctx context.Context, kind ActionKind, p Product) (Outcome, bool) {
	switch kind {
	case ActionAddToCart:
		return a.AddToCart(ctx, p), true
	case ActionAddToWishlist:
		return a.AddToWishlist(ctx, p), true
	default:
		return Outcome{}, false
	}
}

func (a Actions) notify(ctx context.Context, n Notification) {
	if a.Sink == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	a.Sink.Notify(ctx, n)
}
