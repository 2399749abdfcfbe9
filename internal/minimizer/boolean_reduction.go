package minimizer

// ReductionOpportunity names a pair of outgoing edges from the same state
// to the same target carrying distinct symbols — a candidate for
// collapsing into one edge labeled with a disjunction of symbols
// (spec §4.D "Boolean reduction").
type ReductionOpportunity struct {
	State   StateID
	Target  StateID
	Symbols []string
}

// FindReductionOpportunities inspects every state's outgoing edges and
// groups those sharing a target. It only reports them; it neither logs
// nor rewrites the automaton (see CollapseReductionOpportunities for the
// rewrite).
func FindReductionOpportunities(a *Automaton) []ReductionOpportunity {
	var out []ReductionOpportunity
	for id := range a.States {
		state := StateID(id)
		byTarget := make(map[StateID][]string)
		for _, sym := range a.alphabetOf(state) {
			target := a.Transitions[state][sym]
			byTarget[target] = append(byTarget[target], sym)
		}
		for target, symbols := range byTarget {
			if len(symbols) >= 2 {
				out = append(out, ReductionOpportunity{State: state, Target: target, Symbols: symbols})
			}
		}
	}
	return out
}

// CollapseReductionOpportunities is the optional actual-rewrite path: it
// removes every symbol edge identified by FindReductionOpportunities and
// replaces it with a single edge labeled with the disjunction of the
// original symbols, joined by "|". Callers opt into it explicitly; the
// pipeline engine does not invoke the minimizer (spec §4.D, §9).
func CollapseReductionOpportunities(a *Automaton) []ReductionOpportunity {
	opportunities := FindReductionOpportunities(a)
	for _, opp := range opportunities {
		for _, sym := range opp.Symbols {
			delete(a.Transitions[opp.State], sym)
		}
		disjunction := opp.Symbols[0]
		for _, sym := range opp.Symbols[1:] {
			disjunction += "|" + sym
		}
		a.AddTransition(opp.State, disjunction, opp.Target)
	}
	return opportunities
}
