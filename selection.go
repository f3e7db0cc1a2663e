package scrawl

/* Selection is None or an ordered, unique set of shape ids. Any change
invalidates the properties panel, matching spec.md §3. */
type Selection struct {
	ids []uint64
}

func NewSelection(ids ...uint64) Selection {
	return Selection{ids: dedupe(ids)}
}

func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

func (s Selection) IDs() []uint64 { return s.ids }

func (s Selection) Contains(id uint64) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s Selection) Add(id uint64) Selection {
	if s.Contains(id) {
		return s
	}
	return Selection{ids: append(append([]uint64{}, s.ids...), id)}
}

func (s Selection) Remove(id uint64) Selection {
	out := make([]uint64, 0, len(s.ids))
	for _, v := range s.ids {
		if v != id {
			out = append(out, v)
		}
	}
	return Selection{ids: out}
}

func (s Selection) Toggle(id uint64) Selection {
	if s.Contains(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}
