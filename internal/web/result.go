package web

import (
	"errors"
	"net/http"

	"gitee.com/flycash/order-notifier/internal/errs"
	"github.com/gin-gonic/gin"
)

// Result 所有接口统一的响应结构，Code 为 0 表示成功
type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Result{Msg: "OK", Data: data})
}

// fail data 不为空时和错误一起返回，例如额度不足时的分发结果
func fail(ctx *gin.Context, err error, data any) {
	code := httpStatus(err)
	ctx.JSON(code, Result{Code: code, Msg: err.Error(), Data: data})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrTenantContextRequired):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrGlobalEntity):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidParameter),
		errors.Is(err, errs.ErrInvalidTemplate):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, errs.ErrJobNotFound),
		errors.Is(err, errs.ErrCompanyNotFound),
		errors.Is(err, errs.ErrContactNotFound),
		errors.Is(err, errs.ErrTemplateNotFound),
		errors.Is(err, errs.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrJobFinished),
		errors.Is(err, errs.ErrJobVersionMismatch),
		errors.Is(err, errs.ErrCompanyInactive):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBalanceUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, errs.ErrProviderNotConfigured),
		errors.Is(err, errs.ErrNoAvailableProvider):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
