package controllers

import (
	"net/http"
	"strconv"

	"stock_advisor_backend/services"

	"github.com/gin-gonic/gin"
)

// DatasetController exposes the loaded indicator dataset
type DatasetController struct {
	dataset *services.DatasetService
}

// NewDatasetController creates a new dataset controller
func NewDatasetController(dataset *services.DatasetService) *DatasetController {
	return &DatasetController{dataset: dataset}
}

// GetDataset returns a page of the loaded indicator table
// GET /api/v1/dataset
func (dc *DatasetController) GetDataset(c *gin.Context) {
	page := 1
	limit := 50

	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	if l := c.Query("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 && limitNum <= 500 {
			limit = limitNum
		}
	}

	records := dc.dataset.Records()
	total := len(records)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records[start:end],
		"total": total,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
		},
	})
}

// GetDatasetStatus returns metadata about the loaded snapshot
// GET /api/v1/dataset/status
func (dc *DatasetController) GetDatasetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": dc.dataset.Status()})
}

// ReloadDataset re-reads the dataset file from disk
// POST /api/v1/admin/actions/reload-dataset
func (dc *DatasetController) ReloadDataset(c *gin.Context) {
	if err := dc.dataset.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dataset reloaded",
		"data":    dc.dataset.Status(),
	})
}
