package dispatch

// MockNotifier is a Notifier whose behaviour is set per test.
type MockNotifier struct {
	NotifyFunc func() error
	calls      int
}

func (m *MockNotifier) Notify() error {
	m.calls++
	if m.NotifyFunc != nil {
		return m.NotifyFunc()
	}
	return nil
}

// testHost is the capability passed to operations in these tests.
type testHost struct {
	name string
}
