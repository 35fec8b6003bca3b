package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triagedesk/backend/internal/logger"
	"github.com/triagedesk/backend/internal/storage"
)

type TicketController struct {
	store storage.Store
}

func NewTicketController(store storage.Store) *TicketController {
	return &TicketController{store: store}
}

// ListTickets handles GET /api/tickets.
func (tc *TicketController) ListTickets(c *gin.Context) {
	tickets, err := tc.store.ListTickets()
	if err != nil {
		logger.WithError(err, "ticket_controller").Error("failed to list tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// SimilarTickets handles GET /api/tickets/similar.
func (tc *TicketController) SimilarTickets(c *gin.Context) {
	query := c.Query("query")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(storage.DefaultSimilarLimit)))

	tickets, err := tc.store.SearchSimilarTickets(query, limit)
	if err != nil {
		logger.WithError(err, "ticket_controller").Error("failed to search similar tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch similar tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
