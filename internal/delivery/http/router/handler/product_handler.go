package handler

import (
	"net/http"
	"strconv"

	"productsmanager/internal/delivery/http/response"
	"productsmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler serves the session owner's catalog.
type ProductHandler struct {
	uc usecase.CatalogUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// productRequest accepts price as a JSON number or string.
type productRequest struct {
	Name        string `json:"name"`
	Price       any    `json:"price"`
	Description string `json:"description"`
}

func (r productRequest) toInput() usecase.ProductInput {
	var price string
	switch v := r.Price.(type) {
	case string:
		price = v
	case float64:
		price = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return usecase.ProductInput{Name: r.Name, Price: price, Description: r.Description}
}

type exportResponse struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// List returns products, optionally filtered by ?q=.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{Query: c.QueryParam("q")})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "")
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.AddProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductView(product), "Product added")
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product updated")
}

// Delete succeeds for products that are already gone.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) Export(c echo.Context) error {
	var input usecase.ExportProductsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid export input")
	}

	output, err := h.uc.ExportProducts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, exportResponse{Location: output.Location, Count: output.Count}, "Products exported")
}
