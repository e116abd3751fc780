package cstream

// stack is the ordered sequence of active units; the top is the unit
// pushed most recently and the only one ever read from. It may be empty
// only transiently — pop and top on an empty stack are caller bugs.
type stack struct {
	units []*Source
}

func (st *stack) push(u *Source) {
	st.units = append(st.units, u)
}

func (st *stack) pop() *Source {
	n := len(st.units)
	if n == 0 {
		panic("cstream: pop of empty source stack")
	}
	u := st.units[n-1]
	st.units[n-1] = nil
	st.units = st.units[:n-1]
	return u
}

func (st *stack) top() *Source {
	n := len(st.units)
	if n == 0 {
		panic("cstream: read from empty source stack")
	}
	return st.units[n-1]
}

func (st *stack) depth() int {
	return len(st.units)
}
