package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/stats/:employee_id", handler.GetEmployeeStats)
		leaves.GET("/:id", handler.GetById)
		leaves.POST("", handler.Create)
		leaves.PATCH("/:id/status", handler.UpdateStatus)
		leaves.DELETE("/:id", handler.Cancel)
	}
}
