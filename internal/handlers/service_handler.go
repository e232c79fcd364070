package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
	log      *zap.Logger
}

func NewServiceHandler(services *ucCatalog.Services, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, log: log}
}

// --------- Requests ---------

type ServiceImageRequest struct {
	URL   string `json:"image_url"`
	Title string `json:"image_title"`
}

type CreateServiceRequest struct {
	Name        string                `json:"service_name"`
	Price       float64               `json:"price"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Gender      string                `json:"service_by_gender"`
	Images      []ServiceImageRequest `json:"service_images"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"service_name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Gender      *string  `json:"service_by_gender"`
}

// --------- Public ---------

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.services.List(c.Request.Context(), catalogdomain.ServiceFilter{
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Query:    c.Query("query"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, svc)
}

// --------- Admin ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	in := ucCatalog.CreateServiceInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Gender:      req.Gender,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, ucCatalog.ImageInput{URL: img.URL, Title: img.Title})
	}

	svc, err := h.services.Create(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	svc, err := h.services.Update(c.Request.Context(), middleware.ActorFrom(c), id, ucCatalog.UpdateServiceInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Gender:      req.Gender,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "service deleted")
}

// AddImage takes a multipart "image" file and an optional "title".
func (h *ServiceHandler) AddImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	svc, err := h.services.AddImage(c.Request.Context(), middleware.ActorFrom(c), id, c.PostForm("title"), file)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) DeleteImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return
	}

	if err := h.services.DeleteImage(c.Request.Context(), middleware.ActorFrom(c), id, imageID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "image deleted")
}
