package model

// TagSet is an insertion-ordered set of tags.
type TagSet []string

func (s TagSet) Has(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// Add appends tag unless it is already present.
func (s TagSet) Add(tag string) TagSet {
	if s.Has(tag) {
		return s
	}
	return append(s, tag)
}

// Remove drops tag, keeping the order of the others.
func (s TagSet) Remove(tag string) TagSet {
	out := s[:0:0]
	for _, t := range s {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a copy that shares no storage with s.
func (s TagSet) Clone() []string {
	return append([]string{}, s...)
}
