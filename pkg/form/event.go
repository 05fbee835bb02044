package form

import "fmt"

// Event identifies a lifecycle event.
type Event string

const (
	// EventAll is the wildcard; an Events list containing it matches every event.
	EventAll Event = "all"
	// EventInit fires on construction and on Reinitialize.
	EventInit Event = "init"
	// EventChange fires when a field value is set.
	EventChange Event = "change"
	// EventBlur fires when a field loses focus.
	EventBlur Event = "blur"
	// EventFocus fires when a field gains focus.
	EventFocus Event = "focus"
	// EventSubmit fires when the form is submitted.
	EventSubmit Event = "submit"
	// EventReset fires when the form is reset.
	EventReset Event = "reset"
)

var knownEvents = []Event{EventAll, EventInit, EventChange, EventBlur, EventFocus, EventSubmit, EventReset}

// ParseEvent converts a string to an Event.
func ParseEvent(s string) (Event, error) {
	for _, e := range knownEvents {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown event %q", s)
}

// Events is a subscription list of lifecycle events.
type Events []Event

// Contains reports whether the list selects e, either directly or through
// EventAll.
func (es Events) Contains(e Event) bool {
	for _, x := range es {
		if x == EventAll || x == e {
			return true
		}
	}
	return false
}
