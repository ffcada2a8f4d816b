package handlers

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/query"
)

type successEnvelope struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data"`
	Pagination *query.PageInfo `json:"pagination,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, successEnvelope{Success: true, Data: data})
}

func respondPage(c *gin.Context, status int, data interface{}, page query.PageInfo) {
	c.JSON(status, successEnvelope{Success: true, Data: data, Pagination: &page})
}
