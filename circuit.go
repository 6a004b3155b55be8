package qhack

/*
Circuit is an ordered list of gates, applied first to last.
*/
type Circuit struct {
	Gates []Gate
}

func NewCircuit(gates ...Gate) *Circuit {
	return &Circuit{Gates: gates}
}

func (c *Circuit) Add(gates ...Gate) *Circuit {
	c.Gates = append(c.Gates, gates...)
	return c
}

/*
Wires returns the number of wires the circuit needs, one past the highest
wire any gate touches.
*/
func (c *Circuit) Wires() int {
	n := 0
	for _, g := range c.Gates {
		for _, w := range g.Wires {
			if w+1 > n {
				n = w + 1
			}
		}
	}
	return n
}

/*
BroadcastSingle places one gate on every wire. The gate for wires[i] is
built by fn(wires[i], i).
*/
func BroadcastSingle(wires []int, fn func(wire, i int) Gate) []Gate {
	gates := make([]Gate, 0, len(wires))
	for i, w := range wires {
		gates = append(gates, fn(w, i))
	}
	return gates
}

/*
BroadcastRing places a two-wire gate on neighbouring wire pairs, wrapping
around from the last wire to the first. Two wires give a single pair
rather than a back-and-forth, and one wire gives none.
*/
func BroadcastRing(wires []int, fn func(a, b int) Gate) []Gate {
	pairs := RingPairs(wires)
	gates := make([]Gate, 0, len(pairs))
	for _, p := range pairs {
		gates = append(gates, fn(p[0], p[1]))
	}
	return gates
}

func RingPairs(wires []int) [][2]int {
	n := len(wires)
	switch n {
	case 0, 1:
		return nil
	case 2:
		return [][2]int{{wires[0], wires[1]}}
	}

	pairs := make([][2]int, 0, n)
	for i := range wires {
		pairs = append(pairs, [2]int{wires[i], wires[(i+1)%n]})
	}
	return pairs
}
