package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	mediasvc "github.com/trezcool/darasa/services/media"
)

type uploadApi struct {
	svc    *mediasvc.Service
	logger core.Logger
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := uploadApi{
		svc:    deps.MediaSvc,
		logger: deps.Logger,
	}

	ug := g.Group("/uploads", jwt)
	ug.POST("", api.create, adminMiddleware())
}

func (api *uploadApi) create(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	ref, err := api.svc.Upload(fh.Filename, src, func(progress int) {
		api.logger.Debug(fmt.Sprintf("uploading %s: %d%%", fh.Filename, progress))
	})
	if err != nil {
		return errors.Wrap(err, "saving uploaded file")
	}

	return ctx.JSON(http.StatusCreated, UploadResponse{URL: ref})
}

type UploadResponse struct {
	URL string `json:"url"`
}
