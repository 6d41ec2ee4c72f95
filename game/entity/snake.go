package entity

// Snake is an ordered list of cell indices, tail first and head last.
// occupied mirrors Body for constant time membership checks.
type Snake struct {
	Body     []int
	occupied map[int]struct{}
}

// NewSnake builds a snake from tail to head. Duplicate cells are dropped.
func NewSnake(cells ...int) *Snake {
	s := &Snake{
		Body:     make([]int, 0, len(cells)),
		occupied: make(map[int]struct{}, len(cells)),
	}
	for _, c := range cells {
		if s.Contains(c) {
			continue
		}
		s.Move(c)
	}
	return s
}

func (s *Snake) Move(newHead int) {
	s.Body = append(s.Body, newHead)
	s.occupied[newHead] = struct{}{}
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		delete(s.occupied, s.Body[0])
		s.Body = s.Body[1:]
	}
}

func (s *Snake) GetHead() int {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Contains reports whether the cell is part of the body.
func (s *Snake) Contains(cell int) bool {
	_, ok := s.occupied[cell]
	return ok
}

// Cells returns a copy of the body, tail first.
func (s *Snake) Cells() []int {
	cells := make([]int, len(s.Body))
	copy(cells, s.Body)
	return cells
}
