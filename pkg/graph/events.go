package graph

import (
	"slices"
	"strings"
)

const (
	// AllEvents is the wildcard event: a label carrying it matches any event.
	AllEvents = "ALL_EVENTS"
	// NoEvents explicitly subscribes to nothing. It never matches, and an
	// event named NoEvents matches no label.
	NoEvents = "NONE"
)

// Label is the optional payload of an edge: the event name(s) the edge
// responds to and the callback the receiver should run when it does.
// Labels are comparable, so they take part in edge identity.
type Label struct {
	// Event is a single event name, AllEvents, NoEvents, or several names
	// joined by commas. Empty means the edge carries no subscription.
	Event string
	// Callback names what the target does when the edge fires, e.g. "refresh".
	Callback string
}

// NewLabel builds a label subscribed to the given events. Names are
// de-duplicated and sorted so that equal sets produce equal labels.
func NewLabel(callback string, events ...string) Label {
	names := slices.Clone(events)
	names = slices.DeleteFunc(names, func(s string) bool { return s == "" })
	slices.Sort(names)
	return Label{Event: strings.Join(slices.Compact(names), ","), Callback: callback}
}

// Events returns the individual event names carried by the label.
func (l Label) Events() []string {
	if l.Event == "" {
		return nil
	}
	return strings.Split(l.Event, ",")
}

// IsZero reports whether the label carries neither event nor callback.
func (l Label) IsZero() bool { return l == Label{} }

// Match reports whether an event called name should travel along an edge
// carrying this label. A label that names NoEvents among its events matches
// nothing, whatever else it names.
func (l Label) Match(name string) bool {
	if l.Event == "" || name == NoEvents {
		return false
	}
	events := l.Events()
	if slices.Contains(events, NoEvents) {
		return false
	}
	for _, ev := range events {
		if ev == AllEvents || ev == name {
			return true
		}
	}
	return false
}

// String renders the label as "event:callback", omitting empty parts.
func (l Label) String() string {
	switch {
	case l.Callback == "":
		return l.Event
	case l.Event == "":
		return l.Callback
	}
	return l.Event + ":" + l.Callback
}

// MatchingEdges returns the outgoing edges of source whose label matches
// event, in insertion order. An event raised by a vertex that is not in the
// graph is logged and yields no edges; partial graphs are expected.
func (g *Graph[V]) MatchingEdges(event string, source V) []Edge[V] {
	out, ok := g.outgoing[source]
	if !ok {
		g.logger.Warn("got an event from a vertex not in the graph", "vertex", sprint(source), "event", event)
		return nil
	}
	var matched []Edge[V]
	for _, e := range out.all() {
		if e.Label.Match(event) {
			matched = append(matched, e)
		}
	}
	return matched
}
