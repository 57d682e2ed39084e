package web

import (
	"fmt"
	"net/http"

	"extras-cli/internal/datepicker"
	"extras-cli/internal/ical"
	"extras-cli/internal/model"
	"extras-cli/internal/todos"

	"github.com/gin-gonic/gin"
)

type todoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	Repeat      *string `json:"repeat"`
}

// patch validates and normalizes the optional fields into a TodoPatch.
func (s *Server) patch(in todoInput) (model.TodoPatch, error) {
	p := model.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if in.Priority != nil {
		pr, err := model.ParsePriority(*in.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if in.DueDate != nil {
		due, ok := datepicker.NormalizeValue(*in.DueDate, s.cfg.Location)
		if !ok {
			return p, &model.ValidationError{Field: "dueDate", Msg: fmt.Sprintf("invalid due date %q", *in.DueDate)}
		}
		p.DueDate = &due
	}
	if in.Repeat != nil {
		rule, err := todos.NormalizeRepeat(*in.Repeat)
		if err != nil {
			return p, err
		}
		p.Repeat = &rule
	}
	return p, nil
}

func (s *Server) handleTodosList(c *gin.Context) {
	f, err := todos.ParseFilter(c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := s.cfg.Store.ListTodos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos.Apply(list, f))
}

func (s *Server) handleTodoCreate(c *gin.Context) {
	var in todoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := s.patch(in)
	if err != nil {
		respondError(c, err)
		return
	}
	var t model.Todo
	p.Completed = nil
	p.Apply(&t)
	created, err := s.cfg.Store.CreateTodo(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleTodoGet(c *gin.Context) {
	t, err := s.cfg.Store.GetTodo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleTodoPatch(c *gin.Context) {
	var in todoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := s.patch(in)
	if err != nil {
		respondError(c, err)
		return
	}
	t, err := s.cfg.Store.UpdateTodo(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// handleTodoToggle flips completion; completing a repeating todo advances it.
func (s *Server) handleTodoToggle(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := s.cfg.Store.GetTodo(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	t, err = s.cfg.Store.UpdateTodo(ctx, t.ID, todos.TogglePatch(t, s.cfg.Now()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleTodoDelete(c *gin.Context) {
	if err := s.cfg.Store.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleTodoStats(c *gin.Context) {
	list, err := s.cfg.Store.ListTodos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos.ComputeStats(list, s.cfg.Now()))
}

func (s *Server) handleTodosICS(c *gin.Context) {
	list, err := s.cfg.Store.ListTodos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := ical.ExportString(list, ical.ExportOptions{
		IncludeCompleted: c.Query("completed") == "1",
		Now:              s.cfg.Now,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="todos.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (s *Server) handleTodoDescription(c *gin.Context) {
	t, err := s.cfg.Store.GetTodo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderDescriptionHTML(t)))
}
