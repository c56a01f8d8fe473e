package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
)

type WalletController struct {
	Wallets *services.WalletService
	Events  services.EventSink
}

func NewWalletController(wallets *services.WalletService, events services.EventSink) *WalletController {
	return &WalletController{Wallets: wallets, Events: events}
}

func walletErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Insufficient funds",
		})
	case errors.Is(err, services.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Amount must be greater than zero",
		})
	case errors.Is(err, services.ErrInvalidOwnerType), errors.Is(err, services.ErrInvalidTransactionType):
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	case services.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Wallet operation failed",
	})
}

// ListWallets returns all wallets, optionally filtered by owner kind.
func (wc *WalletController) ListWallets(c echo.Context) error {
	page, limit := parsePagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wallets, pagination, err := wc.Wallets.List(ctx, services.WalletListFilter{
		Page:      page,
		Limit:     limit,
		OwnerType: c.QueryParam("ownerType"),
		Owner:     c.QueryParam("owner"),
	})
	if err != nil {
		return walletErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       wallets,
		Pagination: &pagination,
	})
}

// GetWallet fetches (creating if absent) the wallet for one owner.
func (wc *WalletController) GetWallet(c echo.Context) error {
	ownerType := c.Param("ownerType")
	ownerID, err := objectIDParam(c, "ownerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid owner ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wallet, err := wc.Wallets.GetOrCreate(ctx, ownerType, ownerID)
	if err != nil {
		return walletErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    wallet,
	})
}

// GetBalance returns just the owner's current balance.
func (wc *WalletController) GetBalance(c echo.Context) error {
	ownerType := c.Param("ownerType")
	ownerID, err := objectIDParam(c, "ownerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid owner ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	balance, err := wc.Wallets.Balance(ctx, ownerType, ownerID)
	if err != nil {
		return walletErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: map[string]interface{}{
			"ownerType": ownerType,
			"owner":     ownerID,
			"balance":   balance,
		},
	})
}

// GetTransactions pages through the owner's ledger, newest first.
func (wc *WalletController) GetTransactions(c echo.Context) error {
	ownerType := c.Param("ownerType")
	ownerID, err := objectIDParam(c, "ownerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid owner ID",
		})
	}

	page, limit := parsePagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transactions, pagination, err := wc.Wallets.Transactions(ctx, ownerType, ownerID, page, limit)
	if err != nil {
		return walletErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       transactions,
		Pagination: &pagination,
	})
}

// Adjust credits or debits an owner's wallet.
func (wc *WalletController) Adjust(c echo.Context) error {
	ownerType := c.Param("ownerType")
	ownerID, err := objectIDParam(c, "ownerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid owner ID",
		})
	}

	var req models.WalletAdjustRequest
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

	wallet, err := wc.Wallets.Adjust(ctx, ownerType, ownerID, req)
	if err != nil {
		return walletErrorResponse(c, err)
	}

	if wc.Events != nil {
		wc.Events.Publish(services.EventWalletAdjusted, "Wallet adjusted", map[string]interface{}{
			"ownerType": ownerType,
			"owner":     ownerID.Hex(),
			"type":      req.Type,
			"amount":    req.Amount,
			"balance":   wallet.Balance,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Wallet adjusted successfully",
		Data:    wallet,
	})
}

// Transfer moves money between two wallets as a mirrored debit/credit
// pair.
func (wc *WalletController) Transfer(c echo.Context) error {
	var req models.WalletTransferRequest
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	from, to, err := wc.Wallets.Transfer(ctx, req)
	if err != nil {
		return walletErrorResponse(c, err)
	}

	if wc.Events != nil {
		wc.Events.Publish(services.EventWalletTransfer, "Wallet transfer completed", map[string]interface{}{
			"fromType": req.FromType,
			"fromId":   req.FromID,
			"toType":   req.ToType,
			"toId":     req.ToID,
			"amount":   req.Amount,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Transfer completed successfully",
		Data: map[string]interface{}{
			"from": from,
			"to":   to,
		},
	})
}
