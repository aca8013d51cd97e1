package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Page[T any] struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// List garante "[]" em vez de "null" para coleções vazias.
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, data)
}

func Paged[T any](c *gin.Context, page, limit int, total int64, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  data,
	})
}

func Updated(c *gin.Context, n int64) {
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func Deleted(c *gin.Context, n int64) {
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
