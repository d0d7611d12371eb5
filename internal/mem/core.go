package mem

import "fmt"

// PagedCore provides functionality common to any paged memory model.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Size bounds the addressable range to [0, Size); any load or store
	// outside of it results in a BoundsError. Zero means unbounded.
	Size uint

	bases []uint
	sizes []uint
}

// BoundsError indicates that a memory operation, like load or store, addressed
// a cell outside of the memory's range.
type BoundsError struct {
	Addr int
	Size uint
	Op   string
}

func (be BoundsError) Error() string {
	return fmt.Sprintf("%v @%v out of bounds [0, %v)", be.Op, be.Addr, be.Size)
}

func (m *PagedCore) checkBounds(addr, n int, op string) error {
	if addr < 0 {
		return BoundsError{addr, m.Size, op}
	}
	if maxSize := m.Size; maxSize != 0 && uint(addr)+uint(n) > maxSize {
		if uint(addr) < maxSize {
			addr = int(maxSize) // first cell past the end
		}
		return BoundsError{addr, maxSize, op}
	}
	return nil
}

func (m *PagedCore) findPage(addr uint) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

func (m *PagedCore) allocPage(pageID int, addr uint) (base, size uint, isNew bool) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size = m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			lastEnd := m.bases[i] + m.sizes[i]
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		m.bases = append(m.bases, base)
		m.sizes = append(m.sizes, size)
		return base, size, true
	}

	base = m.bases[pageID]
	if addr < base {
		size = m.PageSize
		nextBase := base
		base = addr / m.PageSize * m.PageSize
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		m.bases = append(m.bases, 0)
		m.sizes = append(m.sizes, 0)
		copy(m.bases[pageID+1:], m.bases[pageID:])
		copy(m.sizes[pageID+1:], m.sizes[pageID:])
		m.bases[pageID] = base
		m.sizes[pageID] = size
		return base, size, true
	}

	return base, m.sizes[pageID], false
}
