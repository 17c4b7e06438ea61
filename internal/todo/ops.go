package todo

import "fmt"

// AddTask appends a new incomplete task and saves the list.
func (s *Store) AddTask(description string) (Task, error) {
	tasks := s.LoadOrEmpty()
	task := NewTask(tasks.NextID(), description, s.now())
	tasks = append(tasks, task)
	if err := s.Save(tasks); err != nil {
		return Task{}, err
	}
	s.logger.Info("task added", "id", task.ID)
	return task, nil
}

// ToggleComplete flips the completed flag of the task with id.
// Calling it twice restores the original state.
func (s *Store) ToggleComplete(id int) error {
	tasks := s.LoadOrEmpty()
	if !tasks.Toggle(id) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := s.Save(tasks); err != nil {
		return err
	}
	s.logger.Info("task toggled", "id", id, "completed", tasks.Find(id).Completed)
	return nil
}

// DeleteByID removes the task with id. The file is only rewritten when
// something was removed.
func (s *Store) DeleteByID(id int) error {
	tasks := s.LoadOrEmpty()
	kept := tasks.RemoveID(id)
	if len(kept) == len(tasks) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := s.Save(kept); err != nil {
		return err
	}
	s.logger.Info("task deleted", "id", id)
	return nil
}

// DeleteByIDs removes every task whose id is listed and returns how many
// were removed. Unknown ids are ignored.
func (s *Store) DeleteByIDs(ids []int) (int, error) {
	tasks := s.LoadOrEmpty()
	kept := tasks.RemoveIDs(ids)
	removed := len(tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.Save(kept); err != nil {
		return 0, err
	}
	s.logger.Info("tasks deleted", "count", removed)
	return removed, nil
}

// DeleteCompleted removes all completed tasks and returns how many were
// removed. The list is saved even when nothing changed.
func (s *Store) DeleteCompleted() (int, error) {
	tasks := s.LoadOrEmpty()
	kept := tasks.RemoveCompleted()
	if err := s.Save(kept); err != nil {
		return 0, err
	}
	removed := len(tasks) - len(kept)
	s.logger.Info("completed tasks deleted", "count", removed)
	return removed, nil
}

// DeleteAll replaces the list with an empty one.
func (s *Store) DeleteAll() error {
	if err := s.Save(List{}); err != nil {
		return err
	}
	s.logger.Info("all tasks deleted")
	return nil
}

// Stats loads the list and summarises it.
func (s *Store) Stats() Stats {
	return s.LoadOrEmpty().Stats()
}

// Tasks loads the list.
func (s *Store) Tasks() List {
	return s.LoadOrEmpty()
}
