package ring

import "github.com/clring/clring/group"

// DetectLink reports whether two signatures carry the same linking tag T,
// i.e. were produced by the same signer on the same event. Callers pass
// signatures already believed valid (e.g. ones that passed Verify); this
// function does not itself check signature validity.
func DetectLink(g group.Group, a, b *Signature) bool {
	return g.Equal(a.T, b.T)
}

// DetectLinks scans a slice of signatures and groups the indices of those
// sharing a linking tag, letting a relying party flag repeated signing on
// the same event across an arbitrary batch rather than comparing pairs by
// hand.
func DetectLinks(g group.Group, sigs []*Signature) [][]int {
	groups := make([]struct {
		tag     group.Point
		indices []int
	}, 0, len(sigs))

	for i, sig := range sigs {
		placed := false
		for gi := range groups {
			if g.Equal(groups[gi].tag, sig.T) {
				groups[gi].indices = append(groups[gi].indices, i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, struct {
				tag     group.Point
				indices []int
			}{tag: sig.T, indices: []int{i}})
		}
	}

	var linked [][]int
	for _, grp := range groups {
		if len(grp.indices) > 1 {
			linked = append(linked, grp.indices)
		}
	}
	return linked
}
