package viz

import (
	"fmt"

	"github.com/san-kum/moltopo/internal/topology"
)

const maxEvents = 50

// EventLog keeps the most recent membership events as display lines. Pass
// it to topology.WithObserver before building the molecule.
type EventLog struct {
	lines []string
	seq   int
}

func NewEventLog() *EventLog { return &EventLog{} }

func (l *EventLog) OnCommit(ev topology.Event) {
	l.push(fmt.Sprintf("%s %d %s(s) -> atoms=%d residues=%d chains=%d",
		ev.Op, ev.Count, ev.Kind, ev.Atoms, ev.Residues, ev.Chains), false)
}

func (l *EventLog) OnReject(ev topology.Event, err error) {
	l.push(fmt.Sprintf("%s rejected: %v", ev.Op, err), true)
}

func (l *EventLog) push(line string, rejected bool) {
	l.seq++
	mark := "+"
	if rejected {
		mark = "!"
	}
	l.lines = append(l.lines, fmt.Sprintf("%3d %s %s", l.seq, mark, line))
	if len(l.lines) > maxEvents {
		l.lines = l.lines[len(l.lines)-maxEvents:]
	}
}

// Lines returns the retained events, oldest first.
func (l *EventLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
