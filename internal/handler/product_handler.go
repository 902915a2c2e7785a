package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	maxUploadMemory  = 32 << 20
	maxImageSize     = 10 << 20
	maxProductImages = 10
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, product)
}

// GetByCategory handles GET /api/categories/{category}/products.
func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, products)
}

// Create handles POST /api/admin/products as multipart form data: fields
// name, description, price, category, stock, sizes and files under "images".
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProductImages*maxImageSize+maxUploadMemory)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, model.InvalidInput("Invalid multipart form"), h.logger)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	input, err := productInputFromForm(r.MultipartForm)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	images, err := imagesFromForm(r.MultipartForm)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), input, images)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    product,
		Message: "Product added successfully",
	})
}

func productInputFromForm(form *multipart.Form) (model.ProductInput, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	price, err := decimal.NewFromString(value("price"))
	if err != nil {
		return model.ProductInput{}, model.InvalidInput("Price must be a decimal number")
	}

	stock := 0
	if raw := value("stock"); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			return model.ProductInput{}, model.InvalidInput("Stock must be an integer")
		}
	}

	// Sizes arrive either as repeated fields or one comma-separated field.
	var sizes []string
	for _, raw := range form.Value["sizes"] {
		sizes = append(sizes, strings.Split(raw, ",")...)
	}

	return model.ProductInput{
		Name:        value("name"),
		Description: value("description"),
		Price:       price,
		Category:    value("category"),
		Stock:       stock,
		Sizes:       sizes,
	}, nil
}

func imagesFromForm(form *multipart.Form) ([]model.ImageUpload, error) {
	files := form.File["images"]
	if len(files) > maxProductImages {
		return nil, model.InvalidInput(fmt.Sprintf("At most %d images are allowed", maxProductImages))
	}

	images := make([]model.ImageUpload, 0, len(files))
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func readImage(fh *multipart.FileHeader) (model.ImageUpload, error) {
	if fh.Size > maxImageSize {
		return model.ImageUpload{}, model.InvalidInput("Image " + fh.Filename + " is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return model.ImageUpload{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return model.ImageUpload{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	if len(data) > maxImageSize {
		return model.ImageUpload{}, model.InvalidInput("Image " + fh.Filename + " is too large")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return model.ImageUpload{}, model.InvalidInput("File " + fh.Filename + " is not an image")
	}

	return model.ImageUpload{FileName: fh.Filename, ContentType: contentType, Data: data}, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.InvalidInput("Invalid " + key + " parameter")
	}
	return v, nil
}
