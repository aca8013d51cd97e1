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

type ClientHandler struct {
	db       *gorm.DB
	deleteUC *ucCut.DeleteClient
	audit    *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, deleteUC *ucCut.DeleteClient, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, deleteUC: deleteUC, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=100"`
	Alias string `json:"alias" binding:"max=100"`
	Phone string `json:"phone" binding:"omitempty,min=6,max=30"`
	Email string `json:"email" binding:"omitempty,email,max=100"`
	Notes string `json:"notes" binding:"max=255"`
}

// UpdateClientRequest: campo ausente fica como está; "" limpa os opcionais.
type UpdateClientRequest struct {
	Name  *string `json:"name" binding:"omitnil,notblank,max=100"`
	Alias *string `json:"alias" binding:"omitnil,max=100"`
	Phone *string `json:"phone" binding:"omitnil,eq=|min=6,max=30"`
	Email *string `json:"email" binding:"omitnil,eq=|email,max=100"`
	Notes *string `json:"notes" binding:"omitnil,max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client := models.Client{
		Name:  strings.TrimSpace(req.Name),
		Alias: strings.TrimSpace(req.Alias),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Notes: req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	writeAudit(h.audit, c, "client_created", "client", client.ID, gin.H{"name": client.Name})
	httpresp.Created(c, client)
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Alias != nil {
		updates["alias"] = strings.TrimSpace(*req.Alias)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := db.Model(&client).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
			return
		}
	}

	writeAudit(h.audit, c, "client_updated", "client", client.ID, nil)
	httpresp.Updated(c, 1)
}

// ======================================================
// DELETE (cortes e fotos vão junto)
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.deleteUC.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_delete_client")
		return
	}

	httpresp.Deleted(c, n)
}
