package platform

// Platform is the host capability surface the loading layer depends on.
// The game shell implements it on top of whatever connectivity signal
// the host exposes; servers and tests use AlwaysOnline.
type Platform interface {
	// IsOnline reports the current connectivity state.
	IsOnline() bool

	// OnConnectivityChange registers a handler invoked on every
	// transition. Handlers must be fast; they run on the caller's
	// goroutine.
	OnConnectivityChange(handler func(online bool))
}

// AlwaysOnline is the default platform: permanently connected, never
// signals a transition.
type AlwaysOnline struct{}

func (AlwaysOnline) IsOnline() bool { return true }

func (AlwaysOnline) OnConnectivityChange(func(online bool)) {}
