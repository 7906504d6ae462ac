package notify

// SocketPublisher pushes to a provider's live websocket, if any.
type SocketPublisher interface {
	Connected(providerID int64) bool
	SendAssignment(providerID int64, a Assignment)
}

// PushPublisher delivers through an out-of-band push channel.
type PushPublisher interface {
	NotifyAssignment(providerID int64, a Assignment)
}

// Fanout prefers the live websocket and falls back to push when the provider
// has no open connection. Push may be nil when FCM is not configured.
type Fanout struct {
	Socket SocketPublisher
	Push   PushPublisher
	Logger Logger
}

// NotifyAssignment implements the dispatcher's notifier capability.
func (f *Fanout) NotifyAssignment(providerID int64, a Assignment) {
	if f.Socket != nil && f.Socket.Connected(providerID) {
		f.Socket.SendAssignment(providerID, a)
		return
	}
	if f.Push != nil {
		f.Push.NotifyAssignment(providerID, a)
		return
	}
	if f.Logger != nil {
		f.Logger.Infof("notify: no channel for provider %d, request %d assignment not pushed", providerID, a.RequestID)
	}
}
