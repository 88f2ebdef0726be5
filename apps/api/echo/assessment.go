package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core"
	"github.com/jnanasetu/platform/core/assessment"
)

type assessmentApi struct {
	svc      *assessment.Service
	validate *validator.Validate
	logger   core.Logger
}

func registerAssessmentAPI(g *echo.Group, auth echo.MiddlewareFunc, deps ServerDeps) {
	api := assessmentApi{
		svc:      deps.AssessmentSvc,
		validate: deps.Validate,
		logger:   deps.Logger,
	}

	ag := g.Group("/assessments", auth)
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
}

func (api *assessmentApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data assessment.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating assessment")
	}

	api.logger.Info(fmt.Sprintf("assessment %s created for user %s", a.ID, a.UserID))
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assessmentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Query(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	if res == nil {
		res = []assessment.Assessment{}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	a, err := api.svc.Get(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assessment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assessment by ID")
	}
	return ctx.JSON(http.StatusOK, a)
}
