package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	ucCut "github.com/BruksfildServices01/barbershop-manager/internal/usecase/cut"
)

// ======================================================
// HANDLER
// ======================================================

type CutHandler struct {
	createUC      *ucCut.CreateCut
	listUC        *ucCut.ListCuts
	getUC         *ucCut.GetCut
	updateUC      *ucCut.UpdateCut
	deleteUC      *ucCut.DeleteCut
	addPhotoUC    *ucCut.AddPhoto
	deletePhotoUC *ucCut.DeletePhoto

	maxUploadBytes int64
}

func NewCutHandler(
	createUC *ucCut.CreateCut,
	listUC *ucCut.ListCuts,
	getUC *ucCut.GetCut,
	updateUC *ucCut.UpdateCut,
	deleteUC *ucCut.DeleteCut,
	addPhotoUC *ucCut.AddPhoto,
	deletePhotoUC *ucCut.DeletePhoto,
	maxUploadBytes int64,
) *CutHandler {
	return &CutHandler{
		createUC:       createUC,
		listUC:         listUC,
		getUC:          getUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		addPhotoUC:     addPhotoUC,
		deletePhotoUC:  deletePhotoUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCutRequest struct {
	ClientID   uint   `json:"clientId" binding:"required"`
	BarberID   uint   `json:"barberId" binding:"required"`
	Service    string `json:"service" binding:"required,notblank,max=100"`
	Date       string `json:"date" binding:"required,isodate"`
	Detail     string `json:"detail"`
	Nota       string `json:"nota"`
	MetodoPago string `json:"metodoPago" binding:"max=30"`
}

type UpdateCutRequest struct {
	ClientID   *uint   `json:"clientId" binding:"omitempty,gt=0"`
	BarberID   *uint   `json:"barberId" binding:"omitempty,gt=0"`
	Service    *string `json:"service" binding:"omitnil,notblank,max=100"`
	Date       *string `json:"date" binding:"omitempty,isodate"`
	Detail     *string `json:"detail"`
	Nota       *string `json:"nota"`
	MetodoPago *string `json:"metodoPago" binding:"omitempty,max=30"`
}

// ======================================================
// CRUD
// ======================================================

func (h *CutHandler) Create(c *gin.Context) {
	var req CreateCutRequest
	if !bindJSON(c, &req) {
		return
	}

	cut, err := h.createUC.Execute(c.Request.Context(), ucCut.CreateCutInput{
		ActorID:    actorID(c),
		ClientID:   req.ClientID,
		BarberID:   req.BarberID,
		Service:    strings.TrimSpace(req.Service),
		Date:       req.Date,
		Detail:     req.Detail,
		Nota:       req.Nota,
		MetodoPago: req.MetodoPago,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_create_cut")
		return
	}

	httpresp.Created(c, cut)
}

func (h *CutHandler) List(c *gin.Context) {
	cuts, err := h.listUC.Execute(c.Request.Context(), domain.Filter{
		Date:    strings.TrimSpace(c.Query("date")),
		Service: strings.TrimSpace(c.Query("service")),
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_list_cuts")
		return
	}

	httpresp.List(c, cuts)
}

func (h *CutHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cut, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_get_cut")
		return
	}

	httpresp.OK(c, cut)
}

func (h *CutHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateCutRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.updateUC.Execute(c.Request.Context(), ucCut.UpdateCutInput{
		ActorID:    actorID(c),
		ID:         id,
		ClientID:   req.ClientID,
		BarberID:   req.BarberID,
		Service:    req.Service,
		Date:       req.Date,
		Detail:     req.Detail,
		Nota:       req.Nota,
		MetodoPago: req.MetodoPago,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_update_cut")
		return
	}

	httpresp.Updated(c, n)
}

func (h *CutHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.deleteUC.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_delete_cut")
		return
	}

	httpresp.Deleted(c, n)
}

// ======================================================
// PHOTOS
// ======================================================

func (h *CutHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "photo_too_large", "Arquivo muito grande.")
			return
		}
		httperr.BadRequest(c, "missing_photo", "Nenhum arquivo enviado.")
		return
	}

	file, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler arquivo.")
		return
	}
	defer file.Close()

	photo, err := h.addPhotoUC.Execute(c.Request.Context(), ucCut.AddPhotoInput{
		ActorID:     actorID(c),
		CutID:       id,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "failed_to_store_photo")
		return
	}

	httpresp.Created(c, photo)
}

func (h *CutHandler) DeletePhoto(c *gin.Context) {
	cutID, ok := paramID(c, "id")
	if !ok {
		return
	}
	photoID, ok := paramID(c, "photoId")
	if !ok {
		return
	}

	if err := h.deletePhotoUC.Execute(c.Request.Context(), actorID(c), cutID, photoID); err != nil {
		httperr.FromBusiness(c, err, "failed_to_delete_photo")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
