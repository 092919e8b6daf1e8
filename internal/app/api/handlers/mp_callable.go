package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/storefront/internal/app/service/preference"
	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/response"
)

type CreatePreferenceRequest struct {
	// Preference is forwarded verbatim to Mercado Pago; it must carry an items array.
	Preference map[string]any `json:"preference"`
}

type CheckConfigResponse struct {
	Configured bool `json:"configured"`
}

// @Summary      Create Mercado Pago preference
// @Description  Callable endpoint. Creates a checkout preference and returns its redirect targets. Nothing is persisted.
// @Tags         Callable
// @Accept       json
// @Produce      json
// @Param        request body handlers.CallableCreatePreference true "Callable envelope with the preference"
// @Success      200  {object}  handlers.RespCreatePreference
// @Failure      400  {object}  response.CallableError "INVALID_ARGUMENT or FAILED_PRECONDITION"
// @Failure      500  {object}  response.CallableError "UNKNOWN"
// @Router       /mpCreatePreference [post]
func ApiMPCreatePreference(svc *preference.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req response.CallableRequest[*CreatePreferenceRequest]
		if err := c.ShouldBindJSON(&req); err != nil {
			writeCallableError(c, response.CallableInvalidArgument, "invalid request body")
			return
		}
		var pref map[string]any
		if req.Data != nil {
			pref = req.Data.Preference
		}

		res, err := svc.Create(c.Request.Context(), pref)
		if err != nil {
			var apiErr *mercadopago.APIError
			switch {
			case errors.Is(err, preference.ErrInvalidArgument):
				writeCallableError(c, response.CallableInvalidArgument, preference.ErrInvalidArgument.Error())
			case errors.Is(err, preference.ErrNotConfigured):
				writeCallableError(c, response.CallableFailedPrecondition, preference.ErrNotConfigured.Error())
			case errors.As(err, &apiErr):
				writeCallableError(c, response.CallableUnknown, apiErr.Message)
			default:
				writeCallableError(c, response.CallableUnknown, err.Error())
			}
			return
		}
		c.JSON(http.StatusOK, response.Result(res))
	}
}

// @Summary      Check Mercado Pago configuration
// @Description  Callable endpoint. Reports whether a Mercado Pago credential is configured.
// @Tags         Callable
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespCheckConfig
// @Router       /mpCheckConfig [post]
func ApiMPCheckConfig(svc *preference.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Result(CheckConfigResponse{Configured: svc.Configured()}))
	}
}

func writeCallableError(c *gin.Context, status response.CallableStatus, msg string) {
	c.JSON(status.HTTPStatus(), response.Failure(status, msg))
}

func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func RegisterMPCallableRoutes(r gin.IRouter, svc *preference.Service) {
	r.POST("/mpCreatePreference", ApiMPCreatePreference(svc))
	r.OPTIONS("/mpCreatePreference", preflight)
	r.POST("/mpCheckConfig", ApiMPCheckConfig(svc))
	r.OPTIONS("/mpCheckConfig", preflight)
}
