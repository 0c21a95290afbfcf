package webidl

func makeSet[t comparable]() *set[t] {
	return &set[t]{
		v: make(map[t]struct{}),
	}
}

type set[t comparable] struct {
	v map[t]struct{}
}

func (s *set[t]) add(v t) {
	s.v[v] = struct{}{}
}

func (s *set[t]) has(v t) bool {
	_, ok := s.v[v]
	return ok
}
