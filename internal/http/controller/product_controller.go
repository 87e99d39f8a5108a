package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/antique-store-api/internal/model"
	"github.com/iyhunko/antique-store-api/internal/repository"
	"github.com/iyhunko/antique-store-api/internal/service"
	"github.com/shopspring/decimal"
)

const (
	msgProductNotFound      = "Product with this id has not been found"
	msgProductsNotFound     = "Products with this id has not been found"
	msgProductsNameNotFound = "Products with this name has not been found"
	msgInvalidProductID     = "invalid product ID"
	msgMissingNameParam     = "query parameter name is required"
	msgFailedListProducts   = "failed to list products"
	msgFailedGetProduct     = "failed to get product"
	msgFailedCreateProduct  = "failed to create product"
	msgFailedUpdateProduct  = "failed to update product"
	msgFailedDeleteProduct  = "failed to delete product"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest represents the request body for creating or replacing a product.
// name, price and tag are required; an omitted url is stored as "".
type ProductRequest struct {
	Name  *string          `json:"name" example:"Ming Vase"`
	Price *decimal.Decimal `json:"price" swaggertype:"number" example:"1200.50"`
	URL   *string          `json:"url" example:"https://img.example.com/vase.png"`
	Tag   *string          `json:"tag" example:"ceramics"`
}

func (r ProductRequest) toInput() model.ProductInput {
	return model.ProductInput{Name: r.Name, Price: r.Price, URL: r.URL, Tag: r.Tag}
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Name string `form:"name"`
	Tag  string `form:"tag"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListProducts handles the HTTP GET request for listing products.
//
// @Summary list products
// @Description Name matches when it is a prefix or suffix of the product name. Tag must match exactly.
// @Tags Products
// @Produce json
// @Param name query string false "Name prefix or suffix"
// @Param tag query string false "Exact tag"
// @Success 200 {array} model.Product
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products [get]
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	products, err := pc.productService.ListProducts(c.Request.Context(), req.Name, req.Tag)
	if err != nil {
		respondError(c, err, "", msgFailedListProducts)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles the HTTP GET request for a single product.
//
// @Summary get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products/{id} [get]
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgProductNotFound, msgFailedGetProduct)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles the HTTP POST request for creating a new product.
// The response is the full product listing after the insert.
//
// @Summary create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product"
// @Success 201 {array} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	products, err := pc.productService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err, "", msgFailedCreateProduct)
		return
	}

	c.JSON(http.StatusCreated, products)
}

// UpdateProduct handles the HTTP PUT request replacing a product.
//
// @Summary replace a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Product"
// @Success 200 {array} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	products, err := pc.productService.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(c, err, msgProductsNotFound, msgFailedUpdateProduct)
		return
	}

	c.JSON(http.StatusOK, products)
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
//
// @Summary delete a product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	products, err := pc.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgProductsNotFound, msgFailedDeleteProduct)
		return
	}

	c.JSON(http.StatusOK, products)
}

// DeleteProductByName handles the HTTP DELETE request for deleting the first product whose name matches.
//
// @Summary delete a product by name
// @Description Deletes only the lowest-id product whose name starts or ends with the given value.
// @Tags Products
// @Produce json
// @Param name query string true "Name prefix or suffix"
// @Success 200 {array} model.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/products [delete]
func (pc *ProductController) DeleteProductByName(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok || name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingNameParam})
		return
	}

	products, err := pc.productService.DeleteProductByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err, msgProductsNameNotFound, msgFailedDeleteProduct)
		return
	}

	c.JSON(http.StatusOK, products)
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidProductID})
		return 0, false
	}
	return id, true
}

// respondError maps repository errors to status codes. Store failures are
// attached to the gin context for the request logger and never leak to the client.
func respondError(c *gin.Context, err error, notFoundMsg, failedMsg string) {
	var validationErr *repository.ValidationError

	switch {
	case errors.Is(err, repository.ErrNotFound) && notFoundMsg != "":
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failedMsg})
	}
}
