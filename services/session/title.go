package session

import "sync"

const DefaultTitle = "usePopcorn"

// ViewTitle is the title the view layer should display. Acquire replaces it
// until the returned release is called, release restores the previous one.
type ViewTitle struct {
	mux     sync.Mutex
	current string
}

func NewViewTitle(title string) *ViewTitle {
	return &ViewTitle{current: title}
}

func (s *ViewTitle) String() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.current
}

func (s *ViewTitle) Acquire(title string) (release func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	prev := s.current
	s.current = title
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mux.Lock()
			defer s.mux.Unlock()
			s.current = prev
		})
	}
}
