package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	httpdto "github.com/vibast-solutions/ms-go-jobtrack/app/dto/http"
	"github.com/vibast-solutions/ms-go-jobtrack/app/middleware"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/app/validate"
)

type CompanyController struct {
	companyService *service.CompanyService
}

func NewCompanyController(companyService *service.CompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

func (c *CompanyController) List(ctx echo.Context) error {
	search := ctx.QueryParam("search")
	page := intQueryParam(ctx, "page", 1)
	pageSize := intQueryParam(ctx, "page_size", 10)

	result, err := c.companyService.List(ctx.Request().Context(), search, page, pageSize)
	if err != nil {
		logrus.WithError(err).Error("Company list failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, httpdto.ListEnvelope{
		Success:     true,
		Data:        httpdto.NewCompanyListJSON(result.Companies),
		Count:       result.Count,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

func (c *CompanyController) Create(ctx echo.Context) error {
	req := &dto.CompanyCreate{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind company create request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid JSON"})
	}

	if err := validate.Struct(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	company, err := c.companyService.Create(ctx.Request().Context(), req, middleware.IdentityFrom(ctx))
	if err != nil {
		logrus.WithError(err).Error("Company create failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	logrus.WithField("company_id", company.ID).Info("Company created")
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: httpdto.NewCompanyJSON(company)})
}

func (c *CompanyController) Update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid id"})
	}

	req := &dto.CompanyUpdate{}
	if err := ctx.Bind(req); err != nil {
		logrus.WithError(err).Debug("Failed to bind company update request")
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid JSON"})
	}

	company, err := c.companyService.Update(ctx.Request().Context(), id, req, middleware.IdentityFrom(ctx))
	if err != nil {
		return companyError(ctx, id, err, "update")
	}

	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: httpdto.NewCompanyJSON(company)})
}

func (c *CompanyController) Delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.Envelope{Success: false, Error: "invalid id"})
	}

	if err := c.companyService.Delete(ctx.Request().Context(), id, middleware.IdentityFrom(ctx)); err != nil {
		return companyError(ctx, id, err, "delete")
	}

	logrus.WithField("company_id", id).Info("Company deleted")
	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Message: "company deleted"})
}

func (c *CompanyController) Options(ctx echo.Context) error {
	options, err := c.companyService.Options(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Company options failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, httpdto.Envelope{Success: true, Data: options})
}

func companyError(ctx echo.Context, id uint64, err error, op string) error {
	if errors.Is(err, service.ErrCompanyNotFound) {
		return ctx.JSON(http.StatusNotFound, httpdto.Envelope{Success: false, Error: "company not found"})
	}
	if errors.Is(err, service.ErrForbidden) {
		logrus.WithField("company_id", id).Warn("Company " + op + " forbidden")
		return ctx.JSON(http.StatusForbidden, httpdto.Envelope{Success: false, Error: "no permission to " + op + " this company"})
	}
	logrus.WithError(err).WithField("company_id", id).Error("Company " + op + " failed")
	return ctx.JSON(http.StatusInternalServerError, httpdto.Envelope{Success: false, Error: err.Error()})
}

func pathID(ctx echo.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}

func intQueryParam(ctx echo.Context, name string, defaultValue int) int {
	if value := ctx.QueryParam(name); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
