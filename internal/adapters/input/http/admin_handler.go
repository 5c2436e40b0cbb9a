package http

import (
	"github.com/gofiber/fiber/v2"
)

// DashboardMetrics godoc
// @Summary Admin dashboard metrics
// @Tags Admin
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/admin/metrics	[get]
// @Produce json
func (hdl *HTTPHandler) DashboardMetrics(c *fiber.Ctx) error {
	metrics, err := hdl.srv.Dashboard.Metrics(c.UserContext())
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, MetricsResponse{
		TotalProducts:        metrics.TotalProducts,
		ActiveSessions:       metrics.ActiveSessions,
		TotalQueries:         metrics.Assistant.TotalQueries,
		FailedQueries:        metrics.Assistant.FailedQueries,
		AvgResponseTimeMs:    metrics.Assistant.AvgResponseTimeMs,
		PopularProducts:      metrics.PopularProducts,
		CategoryDistribution: metrics.CategoryDistribution,
	})
}

// BackfillEmbeddings godoc
// @Summary Embed products lacking an embedding
// @Tags Admin
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/admin/embeddings	[post]
// @Produce json
func (hdl *HTTPHandler) BackfillEmbeddings(c *fiber.Ctx) error {
	stored, err := hdl.srv.Recommendations.BackfillEmbeddings(c.UserContext())
	if err != nil {
		return fail(c, err, fiber.Map{"stored": stored})
	}
	return ok(c, fiber.Map{"stored": stored})
}
