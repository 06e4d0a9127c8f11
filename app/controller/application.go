package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	httpdto "github.com/vibast-solutions/ms-go-jobtrack/app/dto/http"
	"github.com/vibast-solutions/ms-go-jobtrack/app/middleware"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
)

type ApplicationController struct {
	applicationService *service.ApplicationService
}

func NewApplicationController(applicationService *service.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

func (c *ApplicationController) List(ctx echo.Context) error {
	search := ctx.QueryParam("search")
	page := intQueryParam(ctx, "page", 1)
	pageSize := intQueryParam(ctx, "page_size", 10)

	result, err := c.applicationService.List(ctx.Request().Context(), search, page, pageSize)
	if err != nil {
		logrus.WithError(err).Error("Application list failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, httpdto.ListEnvelope{
		Success:     true,
		Data:        httpdto.NewApplicationListJSON(result.Applications),
		Count:       result.Count,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

func (c *ApplicationController) Create(ctx echo.Context) error {
	req := &dto.ApplicationCreate{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind application create request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid JSON"})
	}

	application, err := c.applicationService.Create(ctx.Request().Context(), req, middleware.IdentityFrom(ctx))
	if err != nil {
		var statusErr *service.InvalidStatusError
		if errors.As(err, &statusErr) {
			return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: statusErr.Error()})
		}
		logrus.WithError(err).Error("Application create failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	logrus.WithField("application_id", application.ID).Info("Application created")
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: httpdto.NewApplicationJSON(application)})
}

func (c *ApplicationController) Update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid id"})
	}

	req := &dto.ApplicationUpdate{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind application update request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid JSON"})
	}

	application, err := c.applicationService.Update(ctx.Request().Context(), id, req, middleware.IdentityFrom(ctx))
	if err != nil {
		return applicationError(ctx, id, err, "update")
	}

	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: httpdto.NewApplicationJSON(application)})
}

func (c *ApplicationController) Delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid id"})
	}

	if err := c.applicationService.Delete(ctx.Request().Context(), id, middleware.IdentityFrom(ctx)); err != nil {
		return applicationError(ctx, id, err, "delete")
	}

	logrus.WithField("application_id", id).Info("Application deleted")
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Message: "application deleted"})
}

func (c *ApplicationController) DashboardStats(ctx echo.Context) error {
	stats, err := c.applicationService.DashboardStats(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Dashboard stats failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: httpdto.NewDashboardJSON(stats)})
}

func applicationError(ctx echo.Context, id uint64, err error, op string) error {
	var statusErr *service.InvalidStatusError
	if errors.As(err, &statusErr) {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: statusErr.Error()})
	}
	if errors.Is(err, service.ErrApplicationNotFound) {
		return ctx.JSON(http.StatusNotFound, httpdto.Envelope{Success: false, Error: "application not found"})
	}
	if errors.Is(err, service.ErrForbidden) {
		logrus.WithField("application_id", id).Warn("Application " + op + " forbidden")
		return ctx.JSON(http.StatusForbidden, httpdto.Envelope{Success: false, Error: "no permission to " + op + " this application"})
	}
	logrus.WithError(err).WithField("application_id", id).Error("Application " + op + " failed")
	return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
}
