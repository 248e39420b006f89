package websocket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}

type fakeConnection struct {
	watcherID string
	listingID uint64
	sent      []interface{}
	closed    bool
}

func (f *fakeConnection) Send(message interface{}) error {
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakeConnection) Close() error {
	f.closed = true
	return nil
}

func (f *fakeConnection) WatcherID() string { return f.watcherID }
func (f *fakeConnection) ListingID() uint64 { return f.listingID }

func TestConnectionManager_RegisterAndBroadcast(t *testing.T) {
	cm := NewConnectionManager(nopLogger{})

	bob := &fakeConnection{watcherID: "bob", listingID: 1}
	carol := &fakeConnection{watcherID: "carol", listingID: 1}
	dave := &fakeConnection{watcherID: "dave", listingID: 2}

	require.NoError(t, cm.RegisterConnection("bob", 1, bob))
	require.NoError(t, cm.RegisterConnection("carol", 1, carol))
	require.NoError(t, cm.RegisterConnection("dave", 2, dave))

	require.Len(t, cm.GetConnectionsForListing(1), 2)
	require.Len(t, cm.GetConnectionsForListing(2), 1)

	require.NoError(t, cm.BroadcastToListing(1, map[string]string{"type": "price_update"}))
	require.Len(t, bob.sent, 1)
	require.Len(t, carol.sent, 1)
	require.Empty(t, dave.sent)
}

func TestConnectionManager_Unregister(t *testing.T) {
	cm := NewConnectionManager(nopLogger{})

	bob := &fakeConnection{watcherID: "bob", listingID: 1}
	require.NoError(t, cm.RegisterConnection("bob", 1, bob))
	require.NoError(t, cm.UnregisterConnection("bob", 1))

	require.Empty(t, cm.GetConnectionsForListing(1))

	// Broadcasting to a listing with no watchers is a no-op
	require.NoError(t, cm.BroadcastToListing(1, map[string]string{"type": "price_update"}))
	require.Empty(t, bob.sent)
}

func TestConnectionManager_UnregisterUnknownWatcher(t *testing.T) {
	cm := NewConnectionManager(nopLogger{})
	require.NoError(t, cm.UnregisterConnection("ghost", 9))
}
