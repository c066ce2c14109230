package catalog

import (
	"context"
	"sort"
	"sync"
)

const (
	// ListStationery is the id of the stationery list.
	ListStationery = 1
	// ListTextbooks is the id of the textbooks list.
	ListTextbooks = 2
)

// DefaultLists returns the built-in product lists.
func DefaultLists() []List {
	return []List{
		{ID: ListStationery, Title: "Stationery"},
		{ID: ListTextbooks, Title: "Textbooks"},
	}
}

// DefaultProducts returns the built-in catalog used when no database is configured.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, ListID: ListStationery, Name: "Pencil", Price: 0},
		{ID: 2, ListID: ListStationery, Name: "Notebook", Price: 1000},
		{ID: 3, ListID: ListStationery, Name: "Eraser", Price: 50},
		{ID: 4, ListID: ListStationery, Name: "Marker", Price: 150},
		{ID: 5, ListID: ListStationery, Name: "Highlighter", Price: 200},
		{ID: 6, ListID: ListStationery, Name: "Ruler", Price: 100},
		{ID: 7, ListID: ListStationery, Name: "Stapler", Price: 500},
		{ID: 8, ListID: ListStationery, Name: "Tape", Price: 150},
		{ID: 9, ListID: ListStationery, Name: "Glue", Price: 200},
		{ID: 10, ListID: ListStationery, Name: "Scissors", Price: 300},
		{ID: 11, ListID: ListStationery, Name: "Calculator", Price: 1000},
		{ID: 12, ListID: ListStationery, Name: "Pen", Price: 50},
		{ID: 13, ListID: ListStationery, Name: "Folder", Price: 300},
		{ID: 14, ListID: ListStationery, Name: "Binder", Price: 600},
		{ID: 15, ListID: ListStationery, Name: "Paper Clips", Price: 50},
		{ID: 16, ListID: ListTextbooks, Name: "History Textbook", Price: 1500},
		{ID: 17, ListID: ListTextbooks, Name: "Math Textbook", Price: 2000},
		{ID: 18, ListID: ListTextbooks, Name: "Science Textbook", Price: 2500},
		{ID: 19, ListID: ListTextbooks, Name: "Language Arts Textbook", Price: 1800},
		{ID: 20, ListID: ListTextbooks, Name: "Art Textbook", Price: 2200},
		{ID: 21, ListID: ListTextbooks, Name: "Music Textbook", Price: 1900},
		{ID: 22, ListID: ListTextbooks, Name: "Physical Education Textbook", Price: 1700},
		{ID: 23, ListID: ListTextbooks, Name: "Computer Science Textbook", Price: 3500},
		{ID: 24, ListID: ListTextbooks, Name: "Social Studies Textbook", Price: 2100},
		{ID: 25, ListID: ListTextbooks, Name: "Foreign Language Textbook", Price: 2400},
	}
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	lists    map[int]List
	products map[int64]Product
}

// NewMemoryStore creates a store holding lists and products.
func NewMemoryStore(lists []List, products []Product) *MemoryStore {
	s := &MemoryStore{
		lists:    make(map[int]List, len(lists)),
		products: make(map[int64]Product, len(products)),
	}
	for _, l := range lists {
		s.lists[l.ID] = l
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// NewDefaultMemoryStore creates a store with the built-in catalog.
func NewDefaultMemoryStore() *MemoryStore {
	return NewMemoryStore(DefaultLists(), DefaultProducts())
}

func (s *MemoryStore) Lists(context.Context) ([]List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]List, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) List(_ context.Context, id int) (List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[id]
	if !ok {
		return List{}, ErrListNotFound
	}
	return l, nil
}

func (s *MemoryStore) Products(_ context.Context, listID int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.lists[listID]; !ok {
		return nil, ErrListNotFound
	}
	var out []Product
	for _, p := range s.products {
		if p.ListID == listID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Product(_ context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}
