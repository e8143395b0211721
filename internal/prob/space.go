// Package prob implements a finite probability space with an event
// algebra and conditional probability queries.
package prob

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/stochsim/internal/dynsys"
)

// Space is a finite sample space with a registered probability measure
// over events. The sample space is fixed at construction; events are
// registered one at a time with AddEvent.
//
// Unregistered events are treated as having probability 0. That is a
// bookkeeping simplification, not a probabilistic truth: the measure
// only knows what the caller has told it.
type Space struct {
	dynsys.History
	name    string
	space   map[string]struct{}
	events  map[string][]string
	measure map[string]float64
	state   dynsys.State
}

// New builds a probability space over the given atomic outcomes.
// Duplicate outcomes collapse.
func New(name string, outcomes []string) *Space {
	space := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		space[o] = struct{}{}
	}
	return &Space{
		name:    name,
		space:   space,
		events:  make(map[string][]string),
		measure: make(map[string]float64),
		state:   make(dynsys.State),
	}
}

func (s *Space) Name() string { return s.name }

// Outcomes returns the sample space in sorted order.
func (s *Space) Outcomes() []string {
	out := make([]string, 0, len(s.space))
	for o := range s.space {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// AddEvent registers an event with its probability, overwriting any
// previous probability for the same event. The event key is canonical:
// outcome order and duplicates do not matter.
func (s *Space) AddEvent(event []string, probability float64) error {
	if err := s.checkSubset(event); err != nil {
		return err
	}
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: %v", dynsys.ErrProbRange, probability)
	}
	canon := canonical(event)
	key := eventKey(canon)
	s.events[key] = canon
	s.measure[key] = probability
	s.state["events"] = len(s.events)
	return nil
}

// Probability reports the registered probability of an event and whether
// the event has been registered.
func (s *Space) Probability(event []string) (float64, bool) {
	p, ok := s.measure[eventKey(canonical(event))]
	return p, ok
}

// ConditionalProbability computes P(A|B) from the registered measure.
// When B is unregistered or has probability exactly 0 the result is 0
// by policy, avoiding a division by zero. An unregistered intersection
// likewise contributes probability 0.
func (s *Space) ConditionalProbability(eventA, eventB []string) (float64, error) {
	if err := s.checkSubset(eventA); err != nil {
		return 0, err
	}
	if err := s.checkSubset(eventB); err != nil {
		return 0, err
	}

	pB := s.measure[eventKey(canonical(eventB))]
	if pB == 0 {
		return 0, nil
	}

	pAB := s.measure[eventKey(intersect(eventA, eventB))]
	return pAB / pB, nil
}

// Iterate snapshots the current state. The measure itself has no
// autonomous dynamics.
func (s *Space) Iterate() error {
	s.SaveState(s.state)
	return nil
}

func (s *Space) Summary() map[string]any {
	events := make([][]string, 0, len(s.events))
	for _, ev := range s.events {
		cp := make([]string, len(ev))
		copy(cp, ev)
		events = append(events, cp)
	}
	sort.Slice(events, func(i, j int) bool {
		return eventKey(events[i]) < eventKey(events[j])
	})

	measure := make(map[string]float64, len(s.measure))
	for k, p := range s.measure {
		measure[strings.ReplaceAll(k, keySep, ",")] = p
	}

	return map[string]any{
		"sample_space":        s.Outcomes(),
		"events":              events,
		"probability_measure": measure,
		"history_length":      s.HistoryLen(),
	}
}

func (s *Space) checkSubset(event []string) error {
	for _, o := range event {
		if _, ok := s.space[o]; !ok {
			return fmt.Errorf("%w: outcome %q not in sample space", dynsys.ErrDomain, o)
		}
	}
	return nil
}

// keySep never occurs in outcome labels that survive canonicalization of
// realistic inputs; the unit separator keeps joined keys unambiguous.
const keySep = "\x1f"

func canonical(event []string) []string {
	seen := make(map[string]struct{}, len(event))
	out := make([]string, 0, len(event))
	for _, o := range event {
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

func eventKey(canon []string) string {
	return strings.Join(canon, keySep)
}

func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, o := range b {
		inB[o] = struct{}{}
	}
	out := make([]string, 0)
	for _, o := range canonical(a) {
		if _, ok := inB[o]; ok {
			out = append(out, o)
		}
	}
	return out
}
