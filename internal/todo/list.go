package todo

import "fmt"

// List is the ordered task collection. Order is insertion order.
type List []Task

// NextID returns the id the next added task should get.
func (l List) NextID() int {
	maxID := 0
	for _, t := range l {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Find returns the first task with the given id, or nil if none found.
func (l List) Find(id int) *Task {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// At resolves a 1-based display position to its task.
func (l List) At(position int) (Task, error) {
	if position < 1 || position > len(l) {
		return Task{}, fmt.Errorf("%w: %d", ErrInvalidIndex, position)
	}
	return l[position-1], nil
}

// Toggle flips the completed flag of the first task with the given id.
// It reports whether a task was found.
func (l List) Toggle(id int) bool {
	t := l.Find(id)
	if t == nil {
		return false
	}
	t.Completed = !t.Completed
	return true
}

// RemoveID returns the list without any task carrying id.
func (l List) RemoveID(id int) List {
	return l.filter(func(t Task) bool { return t.ID != id })
}

// RemoveIDs returns the list without any task whose id is in ids.
func (l List) RemoveIDs(ids []int) List {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	return l.filter(func(t Task) bool {
		_, ok := drop[t.ID]
		return !ok
	})
}

// RemoveCompleted returns the list without completed tasks.
func (l List) RemoveCompleted() List {
	return l.filter(func(t Task) bool { return !t.Completed })
}

// Stats counts completed and pending tasks.
func (l List) Stats() Stats {
	completed := 0
	for _, t := range l {
		if t.Completed {
			completed++
		}
	}
	tasks := l
	if tasks == nil {
		tasks = List{}
	}
	return Stats{
		Total:     len(l),
		Completed: completed,
		Pending:   len(l) - completed,
		Tasks:     tasks,
	}
}

func (l List) filter(keep func(Task) bool) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
