package mem

// DefaultCellsPageSize provides a default for Cells.PageSize.
const DefaultCellsPageSize = 256

// Cells implements a paged memory of signed 32-bit cells.
// Every cell within Size reads as 0 until stored; pages are only allocated
// by Stor, so a large but sparsely used memory stays small.
type Cells struct {
	PagedCore
	pages [][]int32
}

// Allocated returns an address one position higher than the last position in
// the last page allocated so far.
func (m *Cells) Allocated() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns a single value from the given address.
// Returns a BoundsError if addr is negative or not less than Size.
func (m *Cells) Load(addr int) (int32, error) {
	if err := m.checkBounds(addr, 1, "load"); err != nil {
		return 0, err
	}

	if len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(uint(addr))
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := addr - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// LoadInto reads len(buf) cells from memory starting at addr.
// Skips any unallocated pages, zeroing the result buffer where encountered.
// Returns a BoundsError if any cell would be out of bounds; no partial load
// is done.
func (m *Cells) LoadInto(addr int, buf []int32) error {
	if len(buf) == 0 {
		return nil
	}

	if err := m.checkBounds(addr, len(buf), "load"); err != nil {
		return err
	}

	at, end := uint(addr), uint(addr)+uint(len(buf))
	for pageID := m.findPage(at); at < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		if skip := int(base) - int(at); skip > 0 {
			if skip >= len(buf) {
				break
			}
			at += uint(skip)
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if skip := int(at) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		at += uint(n)
	}

	for i := range buf {
		buf[i] = 0
	}

	return nil
}

// Stor stores any values at addr, allocating pages if necessary.
// Returns a BoundsError if any cell would be out of bounds; no partial store
// is done.
func (m *Cells) Stor(addr int, values ...int32) error {
	if len(values) == 0 {
		return nil
	}

	if err := m.checkBounds(addr, len(values), "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultCellsPageSize
	}

	at, end := uint(addr), uint(addr)+uint(len(values))
	for pageID := m.findPage(at); at < end; pageID++ {
		base, size, page := m.allocPage(pageID, at)
		if skip := at - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		at += uint(n)
	}

	return nil
}

func (m *Cells) allocPage(pageID int, addr uint) (base, size uint, page []int32) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]int32, size)
		if pageID == len(m.pages) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
