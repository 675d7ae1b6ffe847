package slab

import (
	"testing"
)

func TestSlabAllocFree(t *testing.T) {
	type Data struct {
		A int
	}
	s := New[Data](4)
	if s.Cap() != 4 || s.Len() != 0 {
		t.Fatal("bad init", s.Cap(), s.Len())
	}

	ps := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		p, d := s.Alloc()
		d.A = i
		ps = append(ps, p)
	}
	if s.Cap() != 6 || s.Len() != 6 {
		t.Fatal("grow", s.Cap(), s.Len())
	}
	for i, p := range ps {
		if s.Get(p).A != i {
			t.Fatal("data moved", i, p)
		}
	}

	// 回收后复用，不再增长
	for _, p := range ps {
		s.Free(p)
	}
	for i := 0; i < 6; i++ {
		s.Alloc()
	}
	if s.Cap() != 6 {
		t.Fatal("should reuse freed slots, cap:", s.Cap())
	}
}

func TestSlabKeepDataOnFree(t *testing.T) {
	s := New[int](1)
	p, d := s.Alloc()
	*d = 42
	s.Free(p)
	p2, d2 := s.Alloc()
	if p2 != p || *d2 != 42 {
		t.Fatal("freed slot should keep its contents", p2, *d2)
	}
}

func TestSlabViewStable(t *testing.T) {
	s := New[int](2)
	p, d := s.Alloc()
	*d = 7
	v := s.View()
	// 快照之后再扩容，旧快照内的槽位依然可达
	for i := 0; i < 100; i++ {
		s.Alloc()
	}
	if v.Get(p) != d || *v.Get(p) != 7 {
		t.Fatal("view lost the slot")
	}
}
