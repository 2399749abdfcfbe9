// Package minimizer implements the Okpala/Hopcroft-variant automaton
// minimizer and the companion AST optimizer (spec §4.D).
package minimizer

import (
	"errors"
	"sort"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// StateID identifies a state within an Automaton by its index.
type StateID int

// Automaton is a deterministic finite automaton over string symbols,
// represented with flat index-based transitions so it can be minimized
// without pointer-chasing (spec §9 "arena-and-index representation").
type Automaton struct {
	States      []string // discovery-order names, e.g. "q0", "q1"...
	Final       map[StateID]bool
	Transitions map[StateID]map[string]StateID // state -> symbol -> target
	Start       StateID
}

// NewAutomaton creates an empty automaton with no states; Start is the
// zero StateID until the caller sets it.
func NewAutomaton() *Automaton {
	return &Automaton{
		Final:       make(map[StateID]bool),
		Transitions: make(map[StateID]map[string]StateID),
	}
}

// AddState appends a new state and returns its id.
func (a *Automaton) AddState(name string, final bool) StateID {
	id := StateID(len(a.States))
	a.States = append(a.States, name)
	if final {
		a.Final[id] = true
	}
	a.Transitions[id] = make(map[string]StateID)
	return id
}

// AddTransition records an edge state --symbol--> target.
func (a *Automaton) AddTransition(state StateID, symbol string, target StateID) {
	if a.Transitions[state] == nil {
		a.Transitions[state] = make(map[string]StateID)
	}
	a.Transitions[state][symbol] = target
}

// alphabetOf returns the sorted set of symbols with an outgoing edge from
// state — used both for transition dispatch and the missing-edge
// strictness check (spec §4.D, §9 open question).
func (a *Automaton) alphabetOf(state StateID) []string {
	trans := a.Transitions[state]
	symbols := make([]string, 0, len(trans))
	for sym := range trans {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// Accepts runs the automaton over input, consuming one symbol per slice
// element and rejecting on a missing transition; it is provided chiefly so tests can
// assert language-equivalence between an automaton and its minimization
// (spec §8 "Minimizer" invariant).
func (a *Automaton) Accepts(symbols []string) bool {
	if len(a.States) == 0 {
		return false
	}
	state := a.Start
	for _, sym := range symbols {
		next, ok := a.Transitions[state][sym]
		if !ok {
			return false
		}
		state = next
	}
	return a.Final[state]
}

// Minimize partitions the automaton's states into equivalence classes via
// fixpoint refinement and emits a new Automaton with states renamed
// q0, q1, ... in discovery order (spec §4.D).
func Minimize(a *Automaton) (*Automaton, error) {
	if a == nil {
		return nil, nxerrors.NewMalformedInput(errors.New("nil automaton"))
	}
	if len(a.States) == 0 {
		return NewAutomaton(), nil
	}

	classOf := make([]int, len(a.States))
	for id := range a.States {
		if a.Final[StateID(id)] {
			classOf[id] = 1
		} else {
			classOf[id] = 0
		}
	}
	numClasses := 2
	if !hasFinal(a) {
		numClasses = 1
	}

	alphabets := make([][]string, len(a.States))
	for id := range a.States {
		alphabets[id] = a.alphabetOf(StateID(id))
	}

	for {
		signature := make([]string, len(a.States))
		sigToClass := make(map[string]int)
		nextClassOf := make([]int, len(a.States))

		for id := range a.States {
			sig := signatureOf(a, classOf, StateID(id), alphabets[id])
			signature[id] = sig
		}

		nextNum := 0
		// Assign new class numbers deterministically in state-discovery order,
		// but states must share a class only if they already shared one
		// (their old class is part of the signature).
		for id := range a.States {
			key := signature[id]
			cls, ok := sigToClass[key]
			if !ok {
				cls = nextNum
				sigToClass[key] = cls
				nextNum++
			}
			nextClassOf[id] = cls
		}

		if nextNum == numClasses && sameClasses(classOf, nextClassOf) {
			break
		}
		classOf = nextClassOf
		numClasses = nextNum
	}

	return buildMinimized(a, classOf, numClasses), nil
}

func hasFinal(a *Automaton) bool {
	for id := range a.States {
		if a.Final[StateID(id)] {
			return true
		}
	}
	return false
}

// signatureOf builds a per-state string encoding its own class plus, for
// every symbol in its alphabet, the class of its target — states with
// differing alphabets can never share a signature, implementing the
// missing-edge strictness rule (spec §4.D, §9).
func signatureOf(a *Automaton, classOf []int, state StateID, alphabet []string) string {
	sig := ""
	sig += itoa(classOf[state]) + "|"
	for _, sym := range alphabet {
		target := a.Transitions[state][sym]
		sig += sym + ":" + itoa(classOf[target]) + ","
	}
	return sig
}

func sameClasses(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// buildMinimized emits one representative per final class, named
// q0, q1, ... in discovery order of the class's first occurrence, and one
// transition per (class, symbol) inspected from any representative
// (spec §4.D).
func buildMinimized(a *Automaton, classOf []int, numClasses int) *Automaton {
	out := NewAutomaton()

	classRepresentative := make(map[int]StateID)
	classNewID := make(map[int]StateID)

	order := make([]int, 0, numClasses)
	seen := make(map[int]bool)
	for id := range a.States {
		cls := classOf[id]
		if !seen[cls] {
			seen[cls] = true
			order = append(order, cls)
			classRepresentative[cls] = StateID(id)
		}
	}

	for _, cls := range order {
		rep := classRepresentative[cls]
		name := "q" + itoa(len(out.States))
		newID := out.AddState(name, a.Final[rep])
		classNewID[cls] = newID
	}

	if len(a.States) > 0 {
		out.Start = classNewID[classOf[a.Start]]
	}

	for _, cls := range order {
		rep := classRepresentative[cls]
		newID := classNewID[cls]
		for _, sym := range a.alphabetOf(rep) {
			target := a.Transitions[rep][sym]
			out.AddTransition(newID, sym, classNewID[classOf[target]])
		}
	}

	return out
}
