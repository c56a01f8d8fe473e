package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
)

type AgentController struct {
	Agents *services.AgentService
	Events services.EventSink
}

func NewAgentController(agents *services.AgentService, events services.EventSink) *AgentController {
	return &AgentController{Agents: agents, Events: events}
}

func agentErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Insufficient wallet balance",
		})
	case errors.Is(err, services.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Amount must be greater than zero",
		})
	case services.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Agent operation failed",
	})
}

// ListAgents lists agents with optional search, consultancy, and status
// filters.
func (ac *AgentController) ListAgents(c echo.Context) error {
	page, limit := parsePagination(c)

	var isActive *bool
	if v := c.QueryParam("isActive"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			isActive = &b
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agents, pagination, err := ac.Agents.List(ctx, services.AgentListFilter{
		Page:        page,
		Limit:       limit,
		Search:      c.QueryParam("search"),
		Consultancy: c.QueryParam("consultancy"),
		Status:      c.QueryParam("status"),
		IsActive:    isActive,
	})
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       agents,
		Pagination: &pagination,
	})
}

// GetAgent returns one agent.
func (ac *AgentController) GetAgent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid agent ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agent, err := ac.Agents.GetByID(ctx, id)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    agent,
	})
}

// CreateAgent registers a new agent under a consultancy.
func (ac *AgentController) CreateAgent(c echo.Context) error {
	var req models.CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agent, err := ac.Agents.Create(ctx, req)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Agent created successfully",
		Data:    agent,
	})
}

// UpdateAgent edits agent profile fields. Wallet fields are not
// editable through this endpoint.
func (ac *AgentController) UpdateAgent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid agent ID",
		})
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agent, err := ac.Agents.Update(ctx, id, fields)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Agent updated successfully",
		Data:    agent,
	})
}

// DeleteAgent removes an agent.
func (ac *AgentController) DeleteAgent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid agent ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ac.Agents.Delete(ctx, id); err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Agent deleted successfully",
	})
}

// GetByConsultancy lists a consultancy's active agents.
func (ac *AgentController) GetByConsultancy(c echo.Context) error {
	id, err := objectIDParam(c, "consultancyId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agents, err := ac.Agents.ByConsultancy(ctx, id)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    agents,
	})
}

// Withdraw debits an agent's wallet balance. Total earnings are
// unchanged by withdrawals.
func (ac *AgentController) Withdraw(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid agent ID",
		})
	}

	var req struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.Agents.Withdraw(ctx, id, req.Amount)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	if ac.Events != nil {
		ac.Events.Publish(services.EventAgentWithdrawal, "Agent withdrawal processed", result)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Withdrawal processed successfully",
		Data:    result,
	})
}

// GetStats returns one agent's earnings snapshot.
func (ac *AgentController) GetStats(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid agent ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := ac.Agents.Stats(ctx, id)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}

// GetConsultancyStats aggregates wallet and earnings totals across a
// consultancy's agents.
func (ac *AgentController) GetConsultancyStats(c echo.Context) error {
	id, err := objectIDParam(c, "consultancyId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := ac.Agents.StatsByConsultancy(ctx, id)
	if err != nil {
		return agentErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}
