package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"stok/internal/models"
	"stok/internal/repositories"
	"stok/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Post("/add-product", h.HandleAddProduct)
	router.Put("/products/:id", h.HandleUpdateProduct)
	router.Put("/products/:id/toggle-status", h.HandleToggleStatus)
	router.Put("/products/:id/publish-status", h.HandlePublishStatus)
	router.Put("/products/:id/sold", h.HandleSetSoldQuantity)
	router.Delete("/products/:id", h.HandleDeleteProduct)
}

// addProductRequest mirrors the create form payload. Status and isEnabled
// are optional; the catalog defaults (published, enabled) apply when absent.
type addProductRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Unit      string  `json:"unit" validate:"required"`
	Tag       string  `json:"tag" validate:"required,oneof=kırtasiye temizlik diğer"`
	ImageURL  string  `json:"imageUrl" validate:"omitempty,max=500"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=published draft"`
	IsEnabled *bool   `json:"isEnabled"`
}

// HandleListProducts returns one page of products with pagination metadata.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", services.DefaultPage)
	limit := c.QueryInt("limit", services.DefaultLimit)
	search := c.Query("search")

	result, err := h.service.ListProducts(page, limit, search)
	if err != nil {
		log.Error().Err(err).Msg("error listing products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(result)
}

// HandleAddProduct creates a new product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req addProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Error().Err(err).Msg("error parsing add product request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	isEnabled := true
	if req.IsEnabled != nil {
		isEnabled = *req.IsEnabled
	}
	product := models.Product{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Tag:       req.Tag,
		ImageURL:  req.ImageURL,
		Price:     req.Price,
		Status:    req.Status,
		IsEnabled: isEnabled,
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return h.errorResponse(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product. This is the
// audited path: the service records a stock log entry for every request
// that goes through here.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Error().Err(err).Str("productId", productID).Msg("error parsing update request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	product, err := h.service.UpdateProduct(productID, update)
	if err != nil {
		return h.errorResponse(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleToggleStatus flips a product's enabled flag.
func (h *ProductHandler) HandleToggleStatus(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.service.ToggleStatus(productID)
	if err != nil {
		return h.errorResponse(c, err, "Could not toggle product status")
	}
	return c.JSON(product)
}

// HandlePublishStatus sets a product's publish status.
func (h *ProductHandler) HandlePublishStatus(c *fiber.Ctx) error {
	productID := c.Params("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	product, err := h.service.SetPublishStatus(productID, body.Status)
	if err != nil {
		return h.errorResponse(c, err, "Could not update publish status")
	}
	return c.JSON(product)
}

// HandleSetSoldQuantity sets a product's sold counter.
func (h *ProductHandler) HandleSetSoldQuantity(c *fiber.Ctx) error {
	productID := c.Params("id")

	var body struct {
		SoldQuantity int `json:"soldQuantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	product, err := h.service.SetSoldQuantity(productID, body.SoldQuantity)
	if err != nil {
		return h.errorResponse(c, err, "Could not update sold quantity")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.service.DeleteProduct(productID); err != nil {
		return h.errorResponse(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}

// errorResponse maps service errors onto HTTP statuses. Write paths report
// a missing product as 400, matching the original API.
func (h *ProductHandler) errorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrNegativeQuantity),
		errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Error().Err(err).Msg(fallback)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}

// validationMessage turns the first validator error into a plain message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Invalid value for field '" + verrs[0].Field() + "'"
	}
	return "Invalid request"
}
