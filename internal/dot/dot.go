// Package dot renders NBW and DRW automata as Graphviz .dot text, per
// spec.md §6: accepting states double-circled, initial states fed by an
// invisible source, edges labeled by comma-joined symbol sets.
//
// Grounded on _examples/CyberCzar01-LABS_4/LAB_2/regexlib/dot.go's
// ExportDOT.
package dot

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
)

func symbolLabel(a *nbw.NBW, sym int) string {
	if len(a.CharLabels) == a.Sigma {
		return a.CharLabels[sym]
	}
	return strconv.Itoa(sym)
}

// WriteNBW renders a as a Graphviz digraph to w.
func WriteNBW(w io.Writer, a *nbw.NBW) {
	fmt.Fprintln(w, "digraph NBW {")
	fmt.Fprintln(w, "    rankdir=LR;")

	final := a.Final()
	for s := 0; s < a.N; s++ {
		shape := "circle"
		if final.Test(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s,label=%q];\n", s, shape, stateLabel(a.StateLabels, s))
	}

	labels := map[[2]int][]string{}
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			a.Transition(bitset.FromSlice(a.N, []int{s}), sym).Each(func(t int) {
				key := [2]int{s, t}
				labels[key] = append(labels[key], symbolLabel(a, sym))
			})
		}
	}
	writeEdges(w, "q", labels)

	a.Initial().Each(func(s int) {
		fmt.Fprintf(w, "    _start%d [shape=point]; _start%d -> q%d;\n", s, s, s)
	})

	fmt.Fprintln(w, "}")
}

// WriteDRW renders d as a Graphviz digraph to w. Rabin pairs are emitted
// as a comment listing, since a DRW's acceptance is a property of whole
// runs, not individually markable states.
func WriteDRW(w io.Writer, d *drw.DRW) {
	fmt.Fprintln(w, "digraph DRW {")
	fmt.Fprintln(w, "    rankdir=LR;")

	for s := 0; s < d.N; s++ {
		fmt.Fprintf(w, "    q%d [shape=circle,label=%q];\n", s, stateLabel(d.StateLabels, s))
	}

	labels := map[[2]int][]string{}
	for s := 0; s < d.N; s++ {
		for sym := 0; sym < d.Sigma; sym++ {
			t := d.Step(s, sym)
			key := [2]int{s, t}
			labels[key] = append(labels[key], symLabel(d, sym))
		}
	}
	writeEdges(w, "q", labels)

	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", d.Initial())

	for i, p := range d.Pairs {
		fmt.Fprintf(w, "    // pair %d: Fin=%s Inf=%s\n", i, p.Fin, p.Inf)
	}

	fmt.Fprintln(w, "}")
}

func symLabel(d *drw.DRW, sym int) string {
	if len(d.CharLabels) == d.Sigma {
		return d.CharLabels[sym]
	}
	return strconv.Itoa(sym)
}

func stateLabel(labels []string, s int) string {
	if s < len(labels) && labels[s] != "" {
		return labels[s]
	}
	return strconv.Itoa(s)
}

func writeEdges(w io.Writer, prefix string, labels map[[2]int][]string) {
	keys := make([][2]int, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		fmt.Fprintf(w, "    %s%d -> %s%d [label=%q];\n", prefix, k[0], prefix, k[1], strings.Join(labels[k], ","))
	}
}
