package identity

import "sort"

// Identity is the canonical comparison key for a tracked file.
type Identity string

// String returns the identity as a plain string.
func (identity Identity) String() string {
	return string(identity)
}

// Set holds unique identities.
type Set struct {
	members map[Identity]struct{}
}

// NewSet constructs a set containing the provided identities.
func NewSet(identities ...Identity) Set {
	set := Set{members: make(map[Identity]struct{}, len(identities))}
	for _, identity := range identities {
		set.Add(identity)
	}
	return set
}

// Add inserts an identity into the set.
func (set *Set) Add(identity Identity) {
	if set.members == nil {
		set.members = make(map[Identity]struct{})
	}
	set.members[identity] = struct{}{}
}

// Contains reports whether the identity is a member of the set.
func (set Set) Contains(identity Identity) bool {
	_, exists := set.members[identity]
	return exists
}

// Len returns the number of identities in the set.
func (set Set) Len() int {
	return len(set.members)
}

// Difference returns the identities present in set but absent from other.
func (set Set) Difference(other Set) Set {
	difference := NewSet()
	for identity := range set.members {
		if other.Contains(identity) {
			continue
		}
		difference.Add(identity)
	}
	return difference
}

// Union returns the identities present in either set.
func (set Set) Union(other Set) Set {
	union := NewSet()
	for identity := range set.members {
		union.Add(identity)
	}
	for identity := range other.members {
		union.Add(identity)
	}
	return union
}

// Equal reports whether both sets contain exactly the same identities.
func (set Set) Equal(other Set) bool {
	if set.Len() != other.Len() {
		return false
	}
	for identity := range set.members {
		if !other.Contains(identity) {
			return false
		}
	}
	return true
}

// Sorted returns the identities ordered lexicographically.
func (set Set) Sorted() []Identity {
	sorted := make([]Identity, 0, len(set.members))
	for identity := range set.members {
		sorted = append(sorted, identity)
	}
	sort.Slice(sorted, func(first int, second int) bool {
		return sorted[first] < sorted[second]
	})
	return sorted
}
