package handlers

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"toko/internal/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// MaxImageSize is the largest accepted product image, 2048 KB.
const MaxImageSize = 2048 * 1024

// ProductForm holds the text fields shared by the create and update forms.
type ProductForm struct {
	Title       string `form:"title" validate:"required,min=5"`
	Description string `form:"description" validate:"required,min=10"`
	Price       string `form:"price" validate:"required,decimal"`
	Stock       string `form:"stock" validate:"required,decimal"`
}

// ImageFile describes an uploaded image after content sniffing.
type ImageFile struct {
	MimeType  string `validate:"startswith=image/,oneof=image/jpeg image/png"`
	Extension string `validate:"oneof=jpeg jpg png"`
	Size      int64  `validate:"max=2097152"`
	Content   []byte `validate:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Accepts any finite number: signs, fractions, leading dot and exponents.
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// parseForm binds and trims the text fields of a product form.
func parseForm(c *fiber.Ctx) (ProductForm, error) {
	var form ProductForm
	if err := c.BodyParser(&form); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return form, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	form.Price = strings.TrimSpace(form.Price)
	form.Stock = strings.TrimSpace(form.Stock)
	return form, nil
}

// readImage loads the "image" upload. ok is false when no file was sent.
func readImage(c *fiber.Ctx) (img *ImageFile, ok bool, err error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil || (fh.Filename == "" && fh.Size == 0) {
		return nil, false, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, true, fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read uploaded image: %w", err)
	}

	mt := mimetype.Detect(content)
	return &ImageFile{
		MimeType:  mt.String(),
		Extension: strings.TrimPrefix(mt.Extension(), "."),
		Size:      int64(len(content)),
		Content:   content,
	}, true, nil
}

// validateForm checks the text fields and converts them into typed values.
func (h *ProductHandler) validateForm(form ProductForm, verr *services.ValidationError) (price, stock decimal.Decimal) {
	collect(verr, h.validate.Struct(form), "")
	if verr.HasErrors() {
		return decimal.Zero, decimal.Zero
	}
	return decimal.RequireFromString(form.Price), decimal.RequireFromString(form.Stock)
}

// validateImage checks an uploaded image against the allowed types and size.
func (h *ProductHandler) validateImage(img *ImageFile, verr *services.ValidationError) {
	collect(verr, h.validate.Struct(img), "image")
}

// collect turns validator errors into field messages. When field is not empty
// every message is reported under that field.
func collect(verr *services.ValidationError, err error, field string) {
	if err == nil {
		return
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		verr.Add(field, err.Error())
		return
	}
	for _, e := range validationErrors {
		name := e.Field()
		if field != "" {
			name = field
		}
		verr.Add(name, message(name, e))
	}
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, e.Param())
	case "decimal":
		return fmt.Sprintf("The %s field must be a number.", field)
	case "startswith":
		return fmt.Sprintf("The %s field must be an image.", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be a file of type: jpeg, jpg, png.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %d kilobytes.", field, MaxImageSize/1024)
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", field, e.Tag())
}

func toUpload(img *ImageFile) services.ImageUpload {
	ext := img.Extension
	if ext == "jpeg" {
		ext = "jpg"
	}
	return services.ImageUpload{Content: img.Content, MimeType: img.MimeType, Extension: ext}
}

// bindCreate validates a creation request into a command. No side effects
// happen before every field is valid.
func (h *ProductHandler) bindCreate(c *fiber.Ctx) (services.CreateProductCommand, error) {
	form, err := parseForm(c)
	if err != nil {
		return services.CreateProductCommand{}, err
	}

	verr := services.NewValidationError()
	price, stock := h.validateForm(form, verr)

	img, ok, err := readImage(c)
	if err != nil {
		return services.CreateProductCommand{}, err
	}
	if !ok {
		verr.Add("image", "The image field is required.")
	} else {
		h.validateImage(img, verr)
	}

	if verr.HasErrors() {
		return services.CreateProductCommand{}, verr
	}
	return services.CreateProductCommand{
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
		Image:       toUpload(img),
	}, nil
}

// bindUpdate validates an update request into a command. The image is optional.
func (h *ProductHandler) bindUpdate(c *fiber.Ctx, id uint) (services.UpdateProductCommand, error) {
	form, err := parseForm(c)
	if err != nil {
		return services.UpdateProductCommand{}, err
	}

	verr := services.NewValidationError()
	price, stock := h.validateForm(form, verr)

	img, ok, err := readImage(c)
	if err != nil {
		return services.UpdateProductCommand{}, err
	}
	if ok {
		h.validateImage(img, verr)
	}

	if verr.HasErrors() {
		return services.UpdateProductCommand{}, verr
	}
	cmd := services.UpdateProductCommand{
		ID:          id,
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
	}
	if ok {
		upload := toUpload(img)
		cmd.Image = &upload
	}
	return cmd, nil
}
