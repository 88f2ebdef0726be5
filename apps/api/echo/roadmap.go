package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core/roadmap"
)

type roadmapApi struct {
	svc      *roadmap.Service
	validate *validator.Validate
}

func registerRoadmapAPI(g *echo.Group, auth echo.MiddlewareFunc, deps ServerDeps) {
	api := roadmapApi{
		svc:      deps.RoadmapSvc,
		validate: deps.Validate,
	}

	rg := g.Group("/roadmaps", auth)
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
}

func (api *roadmapApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data roadmap.NewRoadmap
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoadmap")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating roadmap")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *roadmapApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Query(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying roadmaps")
	}
	if res == nil {
		res = []roadmap.Roadmap{}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *roadmapApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	r, err := api.svc.Get(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == roadmap.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding roadmap by ID")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *roadmapApi) update(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data roadmap.UpdateRoadmap
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRoadmap")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.Update(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == roadmap.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating roadmap")
	}
	return ctx.JSON(http.StatusOK, r)
}
