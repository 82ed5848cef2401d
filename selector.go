package mixer

// selectActiveVoices implements §4.5. It walks voices[0:highestVoice],
// classifies each into audible / inaudible-ticking / idle, and writes the
// ids of the voices that should actually be mixed this tick into out
// (which must have capacity >= maxActive). It returns the count written.
//
// Must-live (INAUDIBLE_TICK) voices are always prefixed in out, satisfying
// invariant 4. When there are more audible candidates than room remains
// after must-live voices, the candidates are reduced to the top
// (maxActive-mustlive) by descending overall_volume via quickselectTopK —
// a single-branch iterative quickselect. Unlike a textbook two-sided
// quicksort, quickselect only ever needs to keep recursing on the side that
// still contains the target rank, so no explicit partition stack is
// required to bound its depth; the teacher's "stack depth 24" bound is a
// non-issue here, and a heap-based top-K (the alternative spec.md
// sanctions) would cost the same O(n log k).
func selectActiveVoices(voices []*voice, highestVoice int, maxActive int, out []int) int {
	candidates := make([]int, 0, highestVoice)
	mustlive := 0

	for i := 0; i < highestVoice; i++ {
		v := voices[i]
		if v == nil || !v.live() {
			continue
		}
		if v.has(flagPaused) {
			continue
		}
		if v.has(flagInaudibleTick) {
			candidates = append(candidates, i)
			candidates[len(candidates)-1], candidates[mustlive] = candidates[mustlive], candidates[len(candidates)-1]
			mustlive++
			continue
		}
		if !v.has(flagInaudible) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) <= maxActive {
		n := copy(out, candidates)
		return n
	}
	if mustlive >= maxActive {
		n := copy(out, candidates[:maxActive])
		return n
	}

	tail := candidates[mustlive:]
	k := maxActive - mustlive
	quickselectTopK(voices, tail, k)

	n := copy(out, candidates[:mustlive])
	n += copy(out[mustlive:], tail[:k])
	return n
}

// rankLess reports whether voice id a ranks ahead of voice id b: higher
// overall_volume first, lower id breaking ties (spec.md's stable tie-break).
func rankLess(voices []*voice, a, b int) bool {
	va, vb := voices[a].overallVolume, voices[b].overallVolume
	if va != vb {
		return va > vb
	}
	return a < b
}

// quickselectTopK partitions ids in place so that ids[:k] holds the k
// highest-ranked elements (by rankLess), in arbitrary order among
// themselves. k must be in [0, len(ids)].
func quickselectTopK(voices []*voice, ids []int, k int) {
	if k <= 0 || k >= len(ids) {
		return
	}
	lo, hi := 0, len(ids)-1
	for lo < hi {
		p := partitionByRank(voices, ids, lo, hi)
		switch {
		case p == k-1:
			return
		case p < k-1:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partitionByRank is a Lomuto partition using ids[hi] as pivot: elements
// that rankLess-precede the pivot are moved before it.
func partitionByRank(voices []*voice, ids []int, lo, hi int) int {
	pivot := ids[hi]
	store := lo
	for i := lo; i < hi; i++ {
		if rankLess(voices, ids[i], pivot) {
			ids[i], ids[store] = ids[store], ids[i]
			store++
		}
	}
	ids[store], ids[hi] = ids[hi], ids[store]
	return store
}
