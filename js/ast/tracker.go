package ast

// AllocStats counts the three kinds of storage a tree owns: nodes, non-empty
// lists and non-empty strings. Operator strings are static and not counted.
type AllocStats struct {
	Nodes   int
	Lists   int
	Strings int
}

func (s AllocStats) Total() int {
	return s.Nodes + s.Lists + s.Strings
}

// Tracker records every allocation made through a Builder and every release
// made by Free. A tree built and freed with the same tracker is balanced when
// both sides agree and no node was released twice.
type Tracker struct {
	allocated   AllocStats
	released    AllocStats
	live        map[Node]struct{}
	doubleFrees int
}

func NewTracker() *Tracker {
	return &Tracker{live: make(map[Node]struct{})}
}

func (t *Tracker) Allocated() AllocStats { return t.allocated }
func (t *Tracker) Released() AllocStats  { return t.released }

// Live returns the number of nodes allocated but not yet released.
func (t *Tracker) Live() int { return len(t.live) }

func (t *Tracker) DoubleFrees() int { return t.doubleFrees }

func (t *Tracker) Balanced() bool {
	return t.allocated == t.released && len(t.live) == 0 && t.doubleFrees == 0
}

// Reset forgets all recorded allocations.
func (t *Tracker) Reset() {
	t.allocated = AllocStats{}
	t.released = AllocStats{}
	t.live = make(map[Node]struct{})
	t.doubleFrees = 0
}

func (t *Tracker) allocNode(n Node) {
	if t.live == nil {
		t.live = make(map[Node]struct{})
	}
	t.allocated.Nodes++
	t.live[n] = struct{}{}
}

// releaseNode reports whether n was live.
func (t *Tracker) releaseNode(n Node) bool {
	if _, ok := t.live[n]; !ok {
		t.doubleFrees++
		return false
	}
	delete(t.live, n)
	t.released.Nodes++
	return true
}

func (t *Tracker) allocList(l List) {
	if len(l) > 0 {
		t.allocated.Lists++
	}
}

func (t *Tracker) releaseList(l List) {
	if len(l) > 0 {
		t.released.Lists++
	}
}

func (t *Tracker) allocString(s string) {
	if s != "" {
		t.allocated.Strings++
	}
}

func (t *Tracker) releaseString(s string) {
	if s != "" {
		t.released.Strings++
	}
}
