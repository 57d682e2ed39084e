package web

import (
	"fmt"
	"time"

	"extras-cli/internal/todos"

	"github.com/gin-gonic/gin"
	"github.com/starfederation/datastar-go/datastar"
)

const keepAliveInterval = 25 * time.Second

func (s *Server) statsSignal(c *gin.Context) (todos.Stats, error) {
	list, err := s.cfg.Store.ListTodos(c.Request.Context())
	if err != nil {
		return todos.Stats{}, err
	}
	return todos.ComputeStats(list, s.cfg.Now()), nil
}

// handleEvents streams store changes as datastar signal patches. Every patch
// carries the latest change and fresh todo stats.
func (s *Server) handleEvents(c *gin.Context) {
	ch := s.cfg.Store.Hub().Subscribe(c.Request.Context())
	sse := datastar.NewSSE(c.Writer, c.Request)

	if st, err := s.statsSignal(c); err == nil {
		_ = sse.MarshalAndPatchSignals(map[string]any{"stats": st})
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case change, ok := <-ch:
			if !ok {
				return
			}
			st, err := s.statsSignal(c)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.MarshalAndPatchSignals(map[string]any{"change": change, "stats": st})
		}
	}
}
