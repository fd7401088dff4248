package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"toko/internal/models"
	"toko/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Flash messages shown after a successful write.
const (
	MsgStored  = "Data Berhasil Disimpan!"
	MsgUpdated = "Data Berhasil Diubah!"
	MsgDeleted = "Data Berhasil Dihapus!"
)

// IndexRoute is where every successful write redirects to.
const IndexRoute = "/products"

// IndexView is the listing page.
type IndexView struct {
	View    string `json:"view"`
	Success string `json:"success,omitempty"`
	*services.ProductPage
}

// ProductView is the detail and edit page of one product.
type ProductView struct {
	View     string          `json:"view"`
	Product  *models.Product `json:"product"`
	ImageURL string          `json:"image_url"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	flash    *Flash
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, flash *Flash) *ProductHandler {
	return &ProductHandler{
		service:  service,
		flash:    flash,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleIndex)
	productRoutes.Get("/create", h.HandleCreate)
	productRoutes.Post("/", h.HandleStore)
	productRoutes.Get("/:id", h.HandleShow)
	productRoutes.Get("/:id/edit", h.HandleEdit)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Patch("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDestroy)
	// HTML forms only send GET and POST; the real verb travels in _method.
	productRoutes.Post("/:id", h.HandleMethodOverride)
}

// HandleIndex lists products, ten per page, newest first.
func (h *ProductHandler) HandleIndex(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}

	products, err := h.service.ListProducts(c.UserContext(), page)
	if err != nil {
		return err
	}

	success, err := h.flash.PopSuccess(c)
	if err != nil {
		return err
	}

	return c.JSON(IndexView{
		View:        "products.index",
		Success:     success,
		ProductPage: products,
	})
}

// HandleCreate renders the empty creation form.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "products.create"})
}

// HandleStore validates the form, stores the image and creates the product.
func (h *ProductHandler) HandleStore(c *fiber.Ctx) error {
	cmd, err := h.bindCreate(c)
	if err != nil {
		return err
	}

	if _, err := h.service.CreateProduct(c.UserContext(), cmd); err != nil {
		return err
	}
	return h.redirectIndex(c, MsgStored)
}

// HandleShow renders one product.
func (h *ProductHandler) HandleShow(c *fiber.Ctx) error {
	return h.renderProduct(c, "products.show")
}

// HandleEdit renders the edit form pre-filled with the product.
func (h *ProductHandler) HandleEdit(c *fiber.Ctx) error {
	return h.renderProduct(c, "products.edit")
}

// HandleUpdate validates the form and updates the product, replacing the
// image only when a new one is uploaded.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	cmd, err := h.bindUpdate(c, id)
	if err != nil {
		return err
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), cmd); err != nil {
		return err
	}
	return h.redirectIndex(c, MsgUpdated)
}

// HandleDestroy deletes the product and its image.
func (h *ProductHandler) HandleDestroy(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return h.redirectIndex(c, MsgDeleted)
}

// HandleMethodOverride dispatches POST /products/:id on the _method form field.
func (h *ProductHandler) HandleMethodOverride(c *fiber.Ctx) error {
	switch strings.ToUpper(c.FormValue("_method")) {
	case fiber.MethodPut, fiber.MethodPatch:
		return h.HandleUpdate(c)
	case fiber.MethodDelete:
		return h.HandleDestroy(c)
	}
	return fiber.ErrMethodNotAllowed
}

func (h *ProductHandler) renderProduct(c *fiber.Ctx, view string) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(ProductView{
		View:     view,
		Product:  product,
		ImageURL: "/storage/" + services.ImagePath(product.Image),
	})
}

func (h *ProductHandler) redirectIndex(c *fiber.Ctx, msg string) error {
	if err := h.flash.Success(c, msg); err != nil {
		return err
	}
	return c.Redirect(IndexRoute, fiber.StatusSeeOther)
}

// productID parses the :id route parameter. Anything that is not a valid ID
// cannot address a product.
func productID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("product with ID %q: %w", raw, services.ErrProductNotFound)
	}
	return uint(id), nil
}
