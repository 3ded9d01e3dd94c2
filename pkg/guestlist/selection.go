package guestlist

import "sort"

// Selection paneldeki toplu işlem seçimidir.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle kimliği seçer ya da seçimden çıkarır.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll görünümdeki herkes seçiliyse seçimi temizler, değilse hepsini seçer.
func (s *Selection) ToggleAll(visibleIDs []string) {
	if len(visibleIDs) > 0 && len(s.ids) == len(visibleIDs) && s.containsAll(visibleIDs) {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) containsAll(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Remove verilen kimlikleri seçimden çıkarır; seçili olmayanlar yok sayılır.
func (s *Selection) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs seçili kimlikleri sıralı döndürür.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
