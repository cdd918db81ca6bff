package tree

import (
	"fmt"
	"sort"
	"strings"
)

/*
Importance is a share of total Gini decrease made by splits on the feature
*/
type Importance struct {
	Name  string
	Value float64 // percents
}

/*
Importance returns features used by splits ordered by decreasing importance
*/
func (m *Model) Importance() []Importance {
	sum := map[int]float64{}
	total := 0.0
	var walk func(int)
	walk = func(k int) {
		nd := m.nodes[k]
		if nd.feature < 0 {
			return
		}
		sum[nd.feature] += nd.gain
		total += nd.gain
		walk(nd.left)
		walk(nd.right)
	}
	walk(0)
	r := []Importance{}
	for j, v := range sum {
		r = append(r, Importance{m.names[j], 100 * v / total})
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Value == r[j].Value {
			return r[i].Name < r[j].Name
		}
		return r[i].Value > r[j].Value
	})
	return r
}

/*
Rules returns one line per leaf: conditions leading to the leaf, its positive
class fraction and count of training rows
*/
func (m *Model) Rules() []string {
	r := []string{}
	var walk func(int, []string)
	walk = func(k int, cond []string) {
		nd := m.nodes[k]
		if nd.feature < 0 {
			c := "(all)"
			if len(cond) > 0 {
				c = strings.Join(cond, " & ")
			}
			r = append(r, fmt.Sprintf("%s => %.3f (n=%d)", c, nd.prob(), nd.n))
			return
		}
		name := m.names[nd.feature]
		walk(nd.left, append(cond[:len(cond):len(cond)], fmt.Sprintf("%s < %.4g", name, nd.split)))
		walk(nd.right, append(cond[:len(cond):len(cond)], fmt.Sprintf("%s >= %.4g", name, nd.split)))
	}
	walk(0, nil)
	return r
}

/*
Leaves returns count of leaves
*/
func (m *Model) Leaves() int {
	return len(m.leaves())
}

/*
Depth returns the maximal depth of leaves
*/
func (m *Model) Depth() int {
	d := 0
	for _, l := range m.leaves() {
		if m.nodes[l].depth > d {
			d = m.nodes[l].depth
		}
	}
	return d
}
