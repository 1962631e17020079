package handlers

import (
	goerrors "errors"
	"net/http"

	"finance-ledger/internal/config"
	"finance-ledger/internal/errors"
	"finance-ledger/internal/repositories"
	"finance-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

const maxSeedTransactions = 1000

// DevHandler handles development-only endpoints. The route is only mounted
// outside production; the handler re-checks the environment as a backstop.
type DevHandler struct {
	cfg         *config.Config
	demoService services.DemoDataServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(cfg *config.Config, demoService services.DemoDataServiceInterface) *DevHandler {
	return &DevHandler{
		cfg:         cfg,
		demoService: demoService,
	}
}

// Seed fills the authenticated user's account with demo data
func (h *DevHandler) Seed(c echo.Context) error {
	if h.cfg.IsProduction() {
		return SendError(c, errors.AuthInsufficientPermission)
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntParam(c, "count", 50)
	if count > maxSeedTransactions {
		count = maxSeedTransactions
	}

	summary, err := h.demoService.Seed(userID, count)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    summary,
		Message: "Demo data generated",
	})
}
