package slab

const Null = -1

type node[T any] struct {
	data T
	next int // 空闲链下标，在用时为Null
}

// Slab 只增不减的对象池，下标即句柄，元素地址分配后保持稳定。
// 本身不做并发保护，由调用方加锁；并发读取见View。
type Slab[T any] struct {
	nodes []*node[T]
	free  int
	inuse int
}

func New[T any](reserve int) *Slab[T] {
	s := &Slab[T]{free: Null}
	s.Reserve(reserve)
	return s
}

// Reserve 预分配到至少n个槽位
func (s *Slab[T]) Reserve(n int) {
	for len(s.nodes) < n {
		nd := &node[T]{next: s.free}
		s.free = len(s.nodes)
		s.nodes = append(s.nodes, nd)
	}
}

func (s *Slab[T]) Alloc() (int, *T) {
	if s.free == Null {
		nd := &node[T]{next: Null}
		s.nodes = append(s.nodes, nd)
		s.inuse++
		return len(s.nodes) - 1, &nd.data
	}
	p := s.free
	nd := s.nodes[p]
	s.free = nd.next
	nd.next = Null
	s.inuse++
	return p, &nd.data
}

// Free 归还槽位。内容不清零，保留到下一次Alloc，由调用方自行复位
// （需要跨越回收存活的字段比如换代计数正依赖这一点）
func (s *Slab[T]) Free(p int) {
	nd := s.nodes[p]
	nd.next = s.free
	s.free = p
	s.inuse--
}

func (s *Slab[T]) Get(p int) *T {
	return &s.nodes[p].data
}

func (s *Slab[T]) Len() int {
	return s.inuse
}

func (s *Slab[T]) Cap() int {
	return len(s.nodes)
}

// View 底层存储的切片快照。Alloc扩容会换掉Slab内部的切片头，
// 并发读取方在锁内取View，之后对快照内已有槽位的访问不再需要锁
type View[T any] struct {
	nodes []*node[T]
}

func (s *Slab[T]) View() View[T] {
	return View[T]{nodes: s.nodes}
}

func (v View[T]) Get(p int) *T {
	return &v.nodes[p].data
}

func (v View[T]) Len() int {
	return len(v.nodes)
}
