package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
)

type commentApi struct {
	svc      comment.Service
	acctSvc  account.Service
	validate *validator.Validate
}

func registerCommentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := commentApi{
		svc:      deps.CommentSvc,
		acctSvc:  deps.AccountSvc,
		validate: deps.Validate,
	}

	lg := g.Group("/lessons/:id/comments", jwt, activeMiddleware())
	lg.GET("", api.query)
	lg.POST("", api.create)

	cg := g.Group("/comments", jwt, activeMiddleware())
	cg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *commentApi) query(ctx echo.Context) error {
	cmts, err := api.svc.QueryByLesson(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	if cmts == nil {
		cmts = []comment.Comment{}
	}
	return ctx.JSON(http.StatusOK, cmts)
}

func (api *commentApi) create(ctx echo.Context) error {
	var data CommentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CommentRequest")
	}
	nc := comment.NewComment{LessonID: ctx.Param("id"), Text: data.Text}
	if err := nc.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	cmt, err := api.svc.Add(actor, nc)
	if err != nil {
		return errors.Wrap(err, "adding comment")
	}
	return ctx.JSON(http.StatusCreated, cmt)
}

func (api *commentApi) destroy(ctx echo.Context) error {
	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	if err := api.svc.Delete(actor, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}
