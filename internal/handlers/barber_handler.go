package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	ucCut "github.com/BruksfildServices01/barbershop-manager/internal/usecase/cut"
)

type BarberHandler struct {
	db       *gorm.DB
	deleteUC *ucCut.DeleteBarber
	audit    *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, deleteUC *ucCut.DeleteBarber, audit *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, deleteUC: deleteUC, audit: audit}
}

type BarberRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type UpdateBarberRequest struct {
	Name *string `json:"name" binding:"omitnil,notblank,max=100"`
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if !bindJSON(c, &req) {
		return
	}

	barber := models.Barber{Name: strings.TrimSpace(req.Name)}
	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	writeAudit(h.audit, c, "barber_created", "barber", barber.ID, gin.H{"name": barber.Name})
	httpresp.Created(c, barber)
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var barber models.Barber
	if err := db.First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}

	if req.Name != nil {
		if err := db.Model(&barber).Update("name", strings.TrimSpace(*req.Name)).Error; err != nil {
			httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
			return
		}
	}

	writeAudit(h.audit, c, "barber_updated", "barber", barber.ID, nil)
	httpresp.Updated(c, 1)
}

// Delete remove o barbeiro com todos os cortes e fotos dele.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.deleteUC.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_delete_barber")
		return
	}

	httpresp.Deleted(c, n)
}
