package main

// labelTable maps each marked label to the index of its mark instruction.
type labelTable struct {
	names   []Label // in order of first mark
	targets map[Label]int
}

// mark records at as the target of l; a later mark of the same label
// replaces any earlier one, returning its prior target.
func (lt *labelTable) mark(l Label, at int) (prior int, redefined bool) {
	if lt.targets == nil {
		lt.targets = make(map[Label]int)
	}
	prior, redefined = lt.targets[l]
	if !redefined {
		lt.names = append(lt.names, l)
	}
	lt.targets[l] = at
	return prior, redefined
}

func (lt labelTable) target(l Label) (int, bool) {
	at, defined := lt.targets[l]
	return at, defined
}

func (lt *labelTable) reset() {
	lt.names = lt.names[:0]
	for l := range lt.targets {
		delete(lt.targets, l)
	}
}
