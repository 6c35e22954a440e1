package goap

import "sort"

// maxRPGLayers caps graph construction as a guardrail against pathological
// catalogs; reaching it is not itself a correctness failure.
const maxRPGLayers = 50

// rpg is a Relaxed Planning Graph built from a start state and an action
// catalog by ignoring effect deletions: once a key takes a value in some
// fact layer, that (key, value) pair is recorded and never retracted,
// even if a later layer overwrites the key with something else.
type rpg struct {
	// firstLevel[key][value.String()] is the earliest layer index at
	// which key took on that value.
	firstLevel map[string]map[string]int
}

// buildRPG constructs the graph per §4.5: fact layer 0 is start; each
// subsequent layer applies every action whose precondition is satisfied
// by the previous fact layer, merging effects last-writer-wins among
// actions sorted by name. Construction stops when no new actions apply,
// the fact layer stops changing, or the hard cap is reached.
func buildRPG(start State, actions []Action) *rpg {
	g := &rpg{firstLevel: make(map[string]map[string]int)}
	g.record(start, 0)

	layer := start
	for level := 1; level <= maxRPGLayers; level++ {
		applicable := make([]Action, 0)
		for _, a := range actions {
			if layer.Satisfies(a.Preconditions) {
				applicable = append(applicable, a)
			}
		}
		if len(applicable) == 0 {
			break
		}
		sort.Slice(applicable, func(i, j int) bool { return applicable[i].Name < applicable[j].Name })

		next := layer.Clone()
		for _, a := range applicable {
			for k, v := range a.Effects {
				next[k] = v
			}
		}
		if next.Equal(layer) {
			break
		}
		g.record(next, level)
		layer = next
	}
	return g
}

func (g *rpg) record(state State, level int) {
	for k, v := range state {
		vk := v.String()
		byValue, ok := g.firstLevel[k]
		if !ok {
			byValue = make(map[string]int)
			g.firstLevel[k] = byValue
		}
		if _, seen := byValue[vk]; !seen {
			byValue[vk] = level
		}
	}
}

// firstAppearance returns the earliest layer at which key first held
// value, or (0, false) if it never did.
func (g *rpg) firstAppearance(key string, value Value) (int, bool) {
	byValue, ok := g.firstLevel[key]
	if !ok {
		return 0, false
	}
	level, ok := byValue[value.String()]
	return level, ok
}
