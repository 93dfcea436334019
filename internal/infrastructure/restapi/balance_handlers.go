package restapi

import (
	"errors"
	"net/http"
	"time"

	"balance_aggregator/internal/app/port"
	"balance_aggregator/internal/domain/entity"
	"balance_aggregator/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// APIBalancesResponse is the response body for the balances endpoint.
type APIBalancesResponse struct {
	Chain    string           `json:"chain"`
	Address  string           `json:"address"`
	Balances []entity.Balance `json:"balances"`
}

// APIErrorResponse is the response body for failed queries.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// BalanceHandler handles HTTP requests for balance queries.
type BalanceHandler struct {
	balanceService port.BalanceService
	logger         port.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(bs port.BalanceService, l port.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: bs,
		logger:         l,
	}
}

// GetBalancesHandler serves GET /api/v1/balances/:chain/:address.
func (h *BalanceHandler) GetBalancesHandler(c *gin.Context) {
	chain := c.Param("chain")
	address := c.Param("address")

	start := time.Now()
	balances, err := h.balanceService.GetBalances(c.Request.Context(), chain, address)
	metrics.BalanceQueryDuration.WithLabelValues(chain).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BalanceQueriesTotal.WithLabelValues(chain, "error").Inc()
		h.logger.Warn("Balance query failed", "chain", chain, "address", address, "error", err)
		c.JSON(statusForError(err), APIErrorResponse{Error: err.Error()})
		return
	}

	metrics.BalanceQueriesTotal.WithLabelValues(chain, "ok").Inc()
	c.JSON(http.StatusOK, APIBalancesResponse{
		Chain:    chain,
		Address:  address,
		Balances: balances,
	})
}

// statusForError maps the query error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnknownChain):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidAddress), errors.Is(err, entity.ErrUnsupportedChainType):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
