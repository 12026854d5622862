// observer.go implements the status broadcaster: an ordered list of
// registered observers notified on every state transition. Notification is
// synchronous and strictly ordered after the state mutation it reports -
// an observer never sees a state change without the corresponding
// notification, and is never notified before the mutation is applied.

package ctxctl

// Observer receives controller notifications.
//
// ContextChanged fires exactly once per successful load, switch, or clear,
// with the new current name ("" after Clear). StatusChanged fires on every
// phase transition (loading start, success, failure, clear) with a full
// snapshot.
type Observer interface {
	ContextChanged(name string)
	StatusChanged(s Status)
}

// StateSink mirrors StatusChanged for external reactive-store integration.
// Sinks are invoked alongside every StatusChanged notification, after all
// observers.
type StateSink func(Status)

// Subscribe registers an observer. Observers are notified in registration
// order.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// AddStateSink registers a state sink.
func (c *Controller) AddStateSink(fn StateSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, fn)
}

func (c *Controller) notifyStatus(st Status) {
	for _, o := range c.snapshotObservers() {
		o.StatusChanged(st)
	}
	c.mu.Lock()
	sinks := append([]StateSink(nil), c.sinks...)
	c.mu.Unlock()
	for _, fn := range sinks {
		fn(st)
	}
}

func (c *Controller) notifyContextChanged(name string) {
	for _, o := range c.snapshotObservers() {
		o.ContextChanged(name)
	}
}

func (c *Controller) snapshotObservers() []Observer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Observer(nil), c.observers...)
}

// Funcs adapts plain functions to the Observer interface. Nil fields are
// skipped.
type Funcs struct {
	OnContextChanged func(name string)
	OnStatusChanged  func(s Status)
}

var _ Observer = Funcs{}

// ContextChanged implements Observer.
func (f Funcs) ContextChanged(name string) {
	if f.OnContextChanged != nil {
		f.OnContextChanged(name)
	}
}

// StatusChanged implements Observer.
func (f Funcs) StatusChanged(s Status) {
	if f.OnStatusChanged != nil {
		f.OnStatusChanged(s)
	}
}
