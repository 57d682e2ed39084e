package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"extras-cli/internal/calendar"
	"extras-cli/internal/expense"
	"extras-cli/internal/model"

	"github.com/gin-gonic/gin"
)

type expenseInput struct {
	Date        *string `json:"date"`
	Merchant    *string `json:"merchant"`
	AmountCents *int64  `json:"amountCents"`
	Currency    *string `json:"currency"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (in expenseInput) patch() (model.ExpensePatch, error) {
	p := model.ExpensePatch{
		Date:        in.Date,
		Merchant:    in.Merchant,
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Description: in.Description,
	}
	if in.Category != nil {
		cat, err := model.ParseCategory(*in.Category)
		if err != nil {
			return p, err
		}
		p.Category = &cat
	}
	if in.Status != nil {
		st, err := model.ParseExpenseStatus(*in.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	return p, nil
}

// month parses ?month=YYYY-MM, defaulting to the current month.
func (s *Server) month(c *gin.Context) (calendar.Month, error) {
	v := strings.TrimSpace(c.Query("month"))
	if v == "" {
		return calendar.MonthOf(s.cfg.Now().In(s.cfg.Location)), nil
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return calendar.Month{}, &model.ValidationError{Field: "month", Msg: fmt.Sprintf("invalid month %q (want YYYY-MM)", v)}
	}
	return calendar.MonthOf(t), nil
}

func (s *Server) handleExpensesList(c *gin.Context) {
	list, err := s.cfg.Store.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("month") != "" {
		m, err := s.month(c)
		if err != nil {
			respondError(c, err)
			return
		}
		list = expense.InMonth(list, m)
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleExpenseCreate(c *gin.Context) {
	var in expenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := in.patch()
	if err != nil {
		respondError(c, err)
		return
	}
	var e model.Expense
	p.Apply(&e)
	created, err := s.cfg.Store.CreateExpense(c.Request.Context(), e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleExpensePatch(c *gin.Context) {
	var in expenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := in.patch()
	if err != nil {
		respondError(c, err)
		return
	}
	e, err := s.cfg.Store.UpdateExpense(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) handleExpenseDelete(c *gin.Context) {
	if err := s.cfg.Store.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExpensesCSV(c *gin.Context) {
	list, err := s.cfg.Store.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="expenses.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := expense.WriteCSV(c.Writer, list); err != nil {
		_ = c.Error(err)
	}
}

type budgetView struct {
	model.Budget
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

func budgetViews(list []model.Budget) []budgetView {
	out := make([]budgetView, 0, len(list))
	for _, b := range list {
		p := expense.BudgetProgress(b)
		out = append(out, budgetView{Budget: b, Percent: p.Percent, Over: p.Over})
	}
	return out
}

func (s *Server) handleBudgetsList(c *gin.Context) {
	m, err := s.month(c)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := s.cfg.Store.ListBudgets(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgetViews(list))
}

type budgetInput struct {
	LimitCents *int64 `json:"limitCents" binding:"required"`
}

func (s *Server) handleBudgetPut(c *gin.Context) {
	var in budgetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	m, err := s.month(c)
	if err != nil {
		respondError(c, err)
		return
	}
	b, err := s.cfg.Store.SetBudget(c.Request.Context(), m, model.Category(c.Param("category")), *in.LimitCents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgetViews([]model.Budget{b})[0])
}
