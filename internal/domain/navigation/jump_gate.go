package navigation

// JumpGateNetwork is the supplied inter-system jump adjacency. It is an
// input to route assembly and execution, never computed here.
type JumpGateNetwork struct {
	edges map[string]map[string]bool
}

// NewJumpGateNetwork creates an empty adjacency.
func NewJumpGateNetwork() *JumpGateNetwork {
	return &JumpGateNetwork{edges: make(map[string]map[string]bool)}
}

// AddConnection records a directed jump edge from one gate to another.
func (n *JumpGateNetwork) AddConnection(from, to string) {
	if n.edges[from] == nil {
		n.edges[from] = make(map[string]bool)
	}
	n.edges[from][to] = true
}

// Merge copies every edge of the other adjacency into this one.
func (n *JumpGateNetwork) Merge(other *JumpGateNetwork) {
	if other == nil {
		return
	}
	for from, targets := range other.edges {
		for to := range targets {
			n.AddConnection(from, to)
		}
	}
}

// Connected reports whether a jump from one gate to the other exists.
func (n *JumpGateNetwork) Connected(from, to string) bool {
	return n.edges[from][to]
}

// ConnectionsFrom returns the gates reachable by one jump from the given
// gate.
func (n *JumpGateNetwork) ConnectionsFrom(from string) []string {
	targets := make([]string, 0, len(n.edges[from]))
	for to := range n.edges[from] {
		targets = append(targets, to)
	}
	return targets
}
