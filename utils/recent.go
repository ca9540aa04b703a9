package utils

// RecentLimit caps the per-session recently-viewed list.
const RecentLimit = 10

// RecentList is a most-recent-first list of entity ids, bounded at
// RecentLimit. It is a pure value: handlers load it from the session
// store, mutate it, and write it back.
type RecentList []uint

// Touch moves id to the front, removing any previous occurrence, and
// truncates the list to RecentLimit. Returns the updated list.
func (l RecentList) Touch(id uint) RecentList {
	out := make(RecentList, 0, len(l)+1)
	out = append(out, id)
	for _, v := range l {
		if v == id {
			continue
		}
		out = append(out, v)
	}
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}

// Head returns the first n ids (or fewer).
func (l RecentList) Head(n int) RecentList {
	if n > len(l) {
		n = len(l)
	}
	return l[:n]
}
