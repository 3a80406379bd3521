package pipeline

import (
	"strings"
	"time"
)

// State is a step of the extraction state machine.
type State string

const (
	stateStart         State = "START"
	stateConverting    State = "CONVERTING"
	stateLayoutParsing State = "LAYOUT_PARSING"
	stateTextParsing   State = "TEXT_PARSING"
	stateAssembling    State = "ASSEMBLING"
	stateDone          State = "DONE"
)

// Strategy names the parsing path that produced the structured fields.
type Strategy string

const (
	StrategyLayout Strategy = "layout"
	StrategyText   Strategy = "text"
)

// Trace records the transitions taken while extracting one document.
type Trace struct {
	Path     string        `json:"path,omitempty"`
	States   []State       `json:"states"`
	Strategy Strategy      `json:"strategy"`
	Fallback string        `json:"fallback,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`

	started time.Time
}

func newTrace(path string) *Trace {
	return &Trace{Path: path, States: []State{stateStart}, started: time.Now()}
}

func (t *Trace) enter(s State) {
	t.States = append(t.States, s)
}

// FellBack reports whether layout parsing was abandoned for text parsing.
func (t *Trace) FellBack() bool {
	return t.Fallback != ""
}

func (t *Trace) finish() {
	t.enter(stateDone)
	t.Elapsed = time.Since(t.started)
}

// String renders the transitions as "START -> CONVERTING -> ...".
func (t *Trace) String() string {
	parts := make([]string, len(t.States))
	for i, s := range t.States {
		parts[i] = string(s)
	}
	return strings.Join(parts, " -> ")
}
