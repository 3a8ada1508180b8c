package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/helper/utils"
	"github.com/nqvinh-dev/minishop/internal/services"
)

type ProductHandler struct {
	svc services.ProductService
}

func NewProductHandler(svc services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) SetupRoutes(app *fiber.App) {
	product := app.Group("/v1/product")
	product.Post("/create", h.CreateProduct)
	product.Get("/list", h.ListProducts)
	product.Get("/:id", h.GetProductDetail)
}

func (h *ProductHandler) CreateProduct(ctx *fiber.Ctx) error {
	var requestBody dto.CreateProductRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	product, err := h.svc.CreateProduct(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Product created successfully", fiber.Map{
		"product": product,
	})
}

func (h *ProductHandler) ListProducts(ctx *fiber.Ctx) error {
	list, err := h.svc.ListProducts()
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Product list", fiber.Map{
		"latestProducts":          list.LatestProducts,
		"bestSellingProducts":     list.BestSellingProducts,
		"mostViewedProducts":      list.MostViewedProducts,
		"highestDiscountProducts": list.HighestDiscountProducts,
	})
}

func (h *ProductHandler) GetProductDetail(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Invalid product id")
	}

	product, svcErr := h.svc.GetProductDetail(id)
	if svcErr != nil {
		return utils.ResponseError(ctx, svcErr)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Product detail", fiber.Map{
		"product": product,
	})
}
