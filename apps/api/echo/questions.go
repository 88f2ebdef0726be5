package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jnanasetu/platform/core"
	"github.com/jnanasetu/platform/services/questions"
)

type questionApi struct {
	gen      questions.Generator
	validate *validator.Validate
}

func registerQuestionAPI(g *echo.Group, auth echo.MiddlewareFunc, deps ServerDeps) {
	api := questionApi{
		gen:      deps.QuestionGen,
		validate: deps.Validate,
	}

	qg := g.Group("/questions", auth)
	qg.POST("", api.generate)
}

func (api *questionApi) generate(ctx echo.Context) error {
	var data GenerateQuestionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateQuestionsRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	qs, err := api.gen.Generate(ctx.Request().Context(), data.Topic, data.Difficulty, data.Count)
	if err != nil {
		return errors.Wrap(err, "generating questions")
	}
	return ctx.JSON(http.StatusOK, qs)
}

type GenerateQuestionsRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Count      int    `json:"count" validate:"omitempty,gte=1,lte=20"`
}

func (gr *GenerateQuestionsRequest) Validate(validate *validator.Validate) error {
	gr.Topic = core.CleanString(gr.Topic, true /* lower */)
	gr.Difficulty = core.CleanString(gr.Difficulty, true /* lower */)
	if gr.Count == 0 {
		gr.Count = 5
	}
	return validate.Struct(gr)
}
