//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package execution implements the linear execution-path driver: it walks the token stream
// of one function body, forks and merges per-variable state around conditionals, and either
// skips or summarizes loops. The per-variable semantics live behind the Check and State
// interfaces, so the driver stays independent of what is being tracked.
package execution

import (
	"github.com/Pooja0509/cppcheck/config"
	"github.com/Pooja0509/cppcheck/util/orderedmap"
)

// State is per-variable analysis state owned by an Arena. Implementations are plain value
// holders; all transitions go through the Check that created them.
type State interface {
	// VarID returns the variable id this state tracks. It never changes after creation.
	VarID() int
	// Equal reports whether two states for the same variable are interchangeable. The
	// driver uses it to decide whether diverging branches can be merged.
	Equal(other State) bool
	// Copy returns an independent copy, used when the driver forks a branch.
	Copy() State
}

// Arena holds the tracked states of one walk, keyed by variable id. Iteration order is
// insertion order so that reports and merges are deterministic.
type Arena struct {
	states *orderedmap.OrderedMap[int, State]

	// partialInits counts, per variable, the branch merges that kept the variable from
	// one side only. At config.PartialInitSettleLimit the variable is settled and dropped,
	// matching the scalar walker's guarded-assignment limit.
	partialInits map[int]int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		states:       orderedmap.New[int, State](),
		partialInits: make(map[int]int),
	}
}

// Insert starts tracking a state, replacing any previous state for the same variable.
func (a *Arena) Insert(s State) {
	a.states.Store(s.VarID(), s)
}

// State returns the tracked state for the variable, or nil if it is not tracked.
func (a *Arena) State(varID int) State {
	s, _ := a.states.Load(varID)
	return s
}

// Remove stops tracking the variable. Used when the analysis has concluded for it, either
// by proving initialization or by reporting.
func (a *Arena) Remove(varID int) {
	a.states.Delete(varID)
}

// BailOut stops tracking the variable because the code does something the analysis cannot
// follow. Semantically identical to Remove; kept separate so call sites read as intent.
func (a *Arena) BailOut(varID int) {
	a.states.Delete(varID)
}

// BailOutAll drops every tracked state.
func (a *Arena) BailOutAll() {
	for _, id := range append([]int(nil), a.states.Keys()...) {
		a.states.Delete(id)
	}
}

// Len returns the number of tracked states.
func (a *Arena) Len() int {
	return a.states.Len()
}

// Range calls f for each tracked state in insertion order until f returns false.
func (a *Arena) Range(f func(s State) bool) {
	a.states.OrderedRange(func(_ int, s State) bool {
		return f(s)
	})
}

// Fork returns an independent deep copy, for walking one branch of a conditional.
func (a *Arena) Fork() *Arena {
	out := NewArena()
	a.states.OrderedRange(func(id int, s State) bool {
		out.states.Store(id, s.Copy())
		return true
	})
	for id, n := range a.partialInits {
		out.partialInits[id] = n
	}
	return out
}

// MergeBranches replaces the arena contents with the join of the two branch arenas.
// A variable still tracked in both branches survives only if the branch states agree;
// diverging states are dropped since the linear walk cannot represent the disjunction.
// A variable tracked in only one branch keeps that branch's state, until
// config.PartialInitSettleLimit such one-sided merges have happened for it; after that the
// variable is settled and dropped.
func (a *Arena) MergeBranches(then, els *Arena) {
	a.BailOutAll()
	a.adoptPartialInits(then)
	a.adoptPartialInits(els)
	then.states.OrderedRange(func(id int, s State) bool {
		if other, ok := els.states.Load(id); ok {
			if s.Equal(other) {
				a.states.Store(id, s)
			}
			return true
		}
		a.keepOneSided(id, s)
		return true
	})
	els.states.OrderedRange(func(id int, s State) bool {
		if _, ok := then.states.Load(id); !ok {
			a.keepOneSided(id, s)
		}
		return true
	})
}

// keepOneSided records a one-sided branch survivor, dropping it once it has hit the
// partial-initialization limit.
func (a *Arena) keepOneSided(id int, s State) {
	a.partialInits[id]++
	if a.partialInits[id] >= config.PartialInitSettleLimit {
		return
	}
	a.states.Store(id, s)
}

// adoptPartialInits raises a's counters to at least those of a branch arena, so counts
// accumulated inside nested conditionals are not lost at the join.
func (a *Arena) adoptPartialInits(branch *Arena) {
	for id, n := range branch.partialInits {
		if n > a.partialInits[id] {
			a.partialInits[id] = n
		}
	}
}

// ReplaceWith makes the arena's contents those of other. Used when exactly one branch of a
// conditional can fall through.
func (a *Arena) ReplaceWith(other *Arena) {
	a.BailOutAll()
	a.adoptPartialInits(other)
	other.states.OrderedRange(func(id int, s State) bool {
		a.states.Store(id, s)
		return true
	})
}
