// Package all registers every bundled automaton with the core registry.
package all

import (
	_ "automata/internal/sims/ant"
	_ "automata/internal/sims/block"
	_ "automata/internal/sims/briansbrain"
	_ "automata/internal/sims/busybeaver"
	_ "automata/internal/sims/dendrite"
	_ "automata/internal/sims/elementary"
	_ "automata/internal/sims/life"
	_ "automata/internal/sims/rain"
	_ "automata/internal/sims/vote"
	_ "automata/internal/sims/wator"
	_ "automata/internal/sims/wireworld"
)
