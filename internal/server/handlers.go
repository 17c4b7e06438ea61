package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nibzard/todo-go/internal/todo"
)

type envelope map[string]any

type addTaskRequest struct {
	Description string `json:"description"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{"success": false, "error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

func taskID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// GET /healthz
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}

// GET /api/tasks
func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	stats := s.store.Stats()
	writeJSON(w, http.StatusOK, envelope{
		"success":   true,
		"tasks":     stats.Tasks,
		"total":     stats.Total,
		"completed": stats.Completed,
		"pending":   stats.Pending,
	})
}

// POST /api/tasks
func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		writeErr(w, http.StatusBadRequest, "Task description is required")
		return
	}

	task, err := s.store.AddTask(desc)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Failed to save task")
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Task added successfully",
		"task":    task,
	})
}

// PUT /api/tasks/{id}/complete
func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.ToggleComplete(id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Task not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "Failed to save changes")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Task updated successfully",
	})
}

// DELETE /api/tasks/{id}
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteByID(id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "Task not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "Failed to save changes")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// DELETE /api/tasks/delete-completed
func (s *Server) deleteCompleted(w http.ResponseWriter, _ *http.Request) {
	removed, err := s.store.DeleteCompleted()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Failed to save changes")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": fmt.Sprintf("Deleted %d completed tasks", removed),
		"deleted": removed,
	})
}

// DELETE /api/tasks/delete-all
func (s *Server) deleteAll(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.DeleteAll(); err != nil {
		writeErr(w, http.StatusInternalServerError, "Failed to delete tasks")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "All tasks deleted successfully",
	})
}

// GET /api/stats
func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	stats := s.store.Stats()
	writeJSON(w, http.StatusOK, envelope{
		"success":   true,
		"total":     stats.Total,
		"completed": stats.Completed,
		"pending":   stats.Pending,
	})
}
