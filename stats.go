package probing

type Stats struct {
	Size       int
	Buckets    int
	Allocated  int
	Threshold  int
	LoadFactor float32

	// Longest distance between an entry and its ideal bucket.
	MaxProbeLength int
}

func (t *Table[K, E, P]) stats() Stats {
	s := Stats{
		Size:      t.entries,
		Buckets:   t.buckets,
		Allocated: len(t.mem),
	}

	if t.buckets > 0 {
		s.LoadFactor = float32(t.entries) / float32(t.buckets)
	}

	for i := range t.slots {
		if t.emptyAt(i) {
			continue
		}

		dist := i - t.ideal(P(&t.slots[i]).Key())
		if dist < 0 {
			dist += t.buckets
		}

		s.MaxProbeLength = max(s.MaxProbeLength, dist)
	}

	return s
}
