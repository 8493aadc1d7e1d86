package report

// Event is one recorded status emission.
type Event struct {
	Level   Level
	Message string
	Section bool
}

// Recorder is a Reporter that remembers every event in order. Tests assert
// on the recorded sequence instead of parsing console output.
type Recorder struct {
	Events []Event
}

var _ Reporter = (*Recorder)(nil)

// Report appends a leveled event.
func (r *Recorder) Report(level Level, message string) {
	r.Events = append(r.Events, Event{Level: level, Message: message})
}

// Section appends a section boundary event.
func (r *Recorder) Section(title string) {
	r.Events = append(r.Events, Event{Message: title, Section: true})
}

// Messages returns the recorded non-section messages in order.
func (r *Recorder) Messages() []string {
	msgs := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		if ev.Section {
			continue
		}
		msgs = append(msgs, ev.Message)
	}
	return msgs
}
