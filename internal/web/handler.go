// Package web 对外的 HTTP 接口
package web

import (
	"fmt"
	"strconv"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/service/notification"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"gitee.com/flycash/order-notifier/internal/service/queue"
	"gitee.com/flycash/order-notifier/internal/service/usage"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	dispatcher notification.Dispatcher
	orders     notification.OrderNotifier
	queue      queue.Service
	usage      usage.Service
	registry   *provider.Registry
	logger     *elog.Component
}

func NewHandler(
	dispatcher notification.Dispatcher,
	orders notification.OrderNotifier,
	queueSvc queue.Service,
	usageSvc usage.Service,
	registry *provider.Registry,
) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		orders:     orders,
		queue:      queueSvc,
		usage:      usageSvc,
		registry:   registry,
		logger:     elog.DefaultLogger.With(elog.String("component", "web")),
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := server.Group("/api/v1", TenantIdentity())
	ng := api.Group("/notifications")
	ng.POST("/send", h.Send)
	ng.POST("/jobs", h.Enqueue)
	ng.GET("/jobs/stats", h.Stats)
	ng.GET("/jobs/:id", h.GetJob)
	ng.DELETE("/jobs/:id", h.CancelJob)

	api.POST("/orders/notify", h.NotifyOrder)
	api.GET("/usage/:type", h.CheckLimit)
	api.GET("/providers/sms/balance", h.SMSBalance)
}

func (h *Handler) Send(ctx *gin.Context) {
	var req SendReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err), nil)
		return
	}
	res, err := h.dispatcher.Send(ctx.Request.Context(), req.toDomain())
	if err != nil {
		var data any
		if res.LogID != 0 {
			data = newDispatchResult(res)
		}
		fail(ctx, err, data)
		return
	}
	ok(ctx, newDispatchResult(res))
}

func (h *Handler) Enqueue(ctx *gin.Context) {
	var req EnqueueReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err), nil)
		return
	}
	job, err := h.queue.Enqueue(ctx.Request.Context(), req.toDomain())
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	ok(ctx, newJob(job))
}

func (h *Handler) GetJob(ctx *gin.Context) {
	id, err := jobID(ctx)
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	job, err := h.queue.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	ok(ctx, newJob(job))
}

func (h *Handler) CancelJob(ctx *gin.Context) {
	id, err := jobID(ctx)
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	if err = h.queue.Cancel(ctx.Request.Context(), id); err != nil {
		fail(ctx, err, nil)
		return
	}
	h.logger.Info("任务被取消",
		elog.Int64("tenantId", tenant.ID(ctx.Request.Context())),
		elog.Any("jobId", id))
	ok(ctx, nil)
}

func (h *Handler) Stats(ctx *gin.Context) {
	stats, err := h.queue.Stats(ctx.Request.Context())
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	ok(ctx, JobStats{
		Pending:    stats.Pending,
		Processing: stats.Processing,
		Sent:       stats.Sent,
		Failed:     stats.Failed,
		Total:      stats.Total(),
	})
}

func (h *Handler) NotifyOrder(ctx *gin.Context) {
	var req OrderNotifyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err), nil)
		return
	}
	if req.CompanyID <= 0 || req.OrderTime.IsZero() {
		fail(ctx, fmt.Errorf("%w: companyId 和 orderTime 不能为空", errs.ErrInvalidParameter), nil)
		return
	}
	c := ctx.Request.Context()
	if _, active := tenant.FromContext(c); !active {
		fail(ctx, fmt.Errorf("%w: 订单通知", errs.ErrTenantContextRequired), nil)
		return
	}
	res, err := h.orders.TriggerOrderNotification(c, req.CompanyID, req.OrderTime, req.EmailLogID)
	if err != nil && len(res.Contacts) == 0 {
		fail(ctx, err, nil)
		return
	}
	if err != nil {
		// 部分联系人失败，结果里有每个联系人的情况
		h.logger.Warn("订单通知部分失败",
			elog.Int64("tenantId", tenant.ID(c)),
			elog.Int64("companyId", req.CompanyID),
			elog.FieldErr(err))
	}
	ok(ctx, newOrderResult(res))
}

func (h *Handler) CheckLimit(ctx *gin.Context) {
	typ := domain.UsageType(ctx.Param("type"))
	if !slice.Contains(domain.UsageTypes, typ) {
		fail(ctx, fmt.Errorf("%w: 计量类型 %q", errs.ErrInvalidParameter, typ), nil)
		return
	}
	c := ctx.Request.Context()
	id, active := tenant.FromContext(c)
	if !active {
		fail(ctx, fmt.Errorf("%w: 查询额度", errs.ErrTenantContextRequired), nil)
		return
	}
	status, err := h.usage.CheckLimit(c, id.TenantID, typ)
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	ok(ctx, LimitStatus{
		Type:            typ.String(),
		Allowed:         status.Allowed,
		CurrentUsage:    status.CurrentUsage,
		Limit:           status.Limit,
		UsagePercentage: status.UsagePercentage,
		WarningLevel:    string(status.WarningLevel),
		Message:         status.Message,
	})
}

func (h *Handler) SMSBalance(ctx *gin.Context) {
	b, err := h.registry.SMSBalance(ctx.Request.Context())
	if err != nil {
		fail(ctx, err, nil)
		return
	}
	ok(ctx, Balance{Provider: b.Provider, Amount: b.Amount, Unit: b.Unit})
}

func jobID(ctx *gin.Context) (uint64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id = %q", errs.ErrInvalidParameter, raw)
	}
	return id, nil
}
