package controller

import (
	"fmt"
	"io"
	"mime/multipart"

	"party-advisor-be/internal/dto"
	"party-advisor-be/internal/pkg/serverutils"
	"party-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Upload(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	RemoveDocument(ctx *fiber.Ctx) error
	ResolvePending(ctx *fiber.Ctx) error
	CancelPending(ctx *fiber.Ctx) error
	Catalogue(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	// Public endpoints
	r.Get("/knowledge/v1/catalogue", c.Catalogue)

	h := r.Group("/knowledge/v1/sessions/:id", jwtMiddleware)
	h.Post("/documents", c.Upload)
	h.Get("/documents", c.ListDocuments)
	h.Delete("/documents/:documentId", c.RemoveDocument)
	h.Post("/pending/:pendingId/resolve", c.ResolvePending)
	h.Delete("/pending/:pendingId", c.CancelPending)
}

// Upload accepts one or more files in the multipart field "files".
// @Router /api/knowledge/v1/sessions/{id}/documents [post]
func (c *knowledgeController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form with field 'files' is required")
	}

	headers := form.File["files"]
	files := make([]dto.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		files = append(files, dto.UploadedFile{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get(fiber.HeaderContentType),
			Data:     data,
		})
	}

	res, err := c.knowledgeService.Upload(ctx.UserContext(), ctx.Params("id"), files)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *knowledgeController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.knowledgeService.ListDocuments(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *knowledgeController) RemoveDocument(ctx *fiber.Ctx) error {
	if err := c.knowledgeService.RemoveDocument(ctx.UserContext(), ctx.Params("id"), ctx.Params("documentId")); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove document", nil))
}

func (c *knowledgeController) ResolvePending(ctx *fiber.Ctx) error {
	var req dto.ResolvePendingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.ResolvePending(ctx.UserContext(), ctx.Params("id"), ctx.Params("pendingId"), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve document", res))
}

func (c *knowledgeController) CancelPending(ctx *fiber.Ctx) error {
	if err := c.knowledgeService.CancelPending(ctx.UserContext(), ctx.Params("id"), ctx.Params("pendingId")); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success cancel document", nil))
}

func (c *knowledgeController) Catalogue(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get catalogue", c.knowledgeService.Catalogue(ctx.UserContext())))
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return data, nil
}
