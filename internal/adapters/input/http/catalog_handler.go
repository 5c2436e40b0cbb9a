package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
)

// ListProducts godoc
// @Summary List products
// @Description Search and page the catalog
// @Tags Catalog
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/products	[get]
// @Produce json
// @param search query string false "name or description"
// @param category query string false "category"
// @param page query int false "page"
// @param limit query int false "limit"
// @param order_by query string false "created_at, name, price or category"
// @param asc query bool false "asc"
func (hdl *HTTPHandler) ListProducts(c *fiber.Ctx) error {
	condition := QueryProductRequest{}
	if err := c.QueryParser(&condition); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(condition); err != nil {
		return badRequest(c, err)
	}

	result, err := hdl.srv.Catalog.ListProducts(c.UserContext(), domain.QueryProductRequest{
		Search:   condition.Search,
		Category: condition.Category,
		Limit:    condition.Limit,
		Page:     condition.Page,
		OrderBy:  condition.OrderBy,
		Asc:      condition.Asc,
	})
	if err != nil {
		return fail(c, err, nil)
	}

	data := make([]ProductResponse, 0, len(result.Products))
	for _, p := range result.Products {
		data = append(data, newProductResponse(p))
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        data,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		TotalItem:   result.TotalItem,
	})
}

// GetProduct godoc
// @Summary Get product
// @Tags Catalog
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/products/{id}	[get]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	product, err := hdl.srv.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, newProductResponse(*product))
}

// ProductRecommendations godoc
// @Summary Similar products
// @Description Products whose embedding is close to the product's
// @Tags Catalog
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/products/{id}/recommendations	[get]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) ProductRecommendations(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	similar, err := hdl.srv.Recommendations.ForProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, newSimilarResponse(similar))
}

// SearchRecommendations godoc
// @Summary Semantic product search
// @Tags Catalog
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/recommendations	[get]
// @Produce json
// @param q query string true "free text"
func (hdl *HTTPHandler) SearchRecommendations(c *fiber.Ctx) error {
	var request SearchRequest
	if err := c.QueryParser(&request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}
	similar, err := hdl.srv.Recommendations.Search(c.UserContext(), request.Query)
	if err != nil {
		if errors.Is(err, domain.ErrEndpointUnavailable) {
			return fail(c, err, make([]SimilarProductResponse, 0))
		}
		return fail(c, err, nil)
	}
	return ok(c, newSimilarResponse(similar))
}
