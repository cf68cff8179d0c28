package controllers

import (
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
)

const testRequestImageDir = "test-request-images"

type UploadController struct {
	uploadService shared.UploadService
}

func NewUploadController(uploadService shared.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

func (c *UploadController) TestRequestImage(ctx shared.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return shared.NewValidationError("no file uploaded", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewValidationError("could not read uploaded file", err)
	}
	defer file.Close()

	url, err := c.uploadService.SaveImage(testRequestImageDir, file)
	if err != nil {
		return err
	}
	return shared.OK(ctx, dtos.UploadResponse{URL: url})
}
