package handler

import (
	"net/http"
	"time"

	"account-transfer-service/internal/adapter/http/dto"
	"account-transfer-service/internal/adapter/http/middleware"
	"account-transfer-service/internal/core/domain"
	"account-transfer-service/internal/core/ports"
	"account-transfer-service/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the request body, mapping failures to
// onInvalid, or to SYS_003 when the body exceeded the size limit.
func bindJSON(c *gin.Context, req interface{}, onInvalid func(msg string) *apperror.AppError) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if limit, ok := middleware.BodyTooLarge(err); ok {
			return apperror.ErrRequestTooLarge(limit)
		}
		return onInvalid(err.Error())
	}
	return nil
}

func toAccountResponse(a *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		AccountID: a.ID,
		Balance:   a.Balance().String(),
	}
}

func toTransferResponse(t *domain.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:            t.ID.String(),
		AccountFromID: t.FromAccountID,
		AccountToID:   t.ToAccountID,
		Amount:        t.Amount.String(),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339Nano),
	}
}

// HealthCheck reports the state of every configured dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
