// Package dashboard é o painel administrativo renderizado no servidor.
// Cada navegador tem uma sessão própria (cookie + SessionStore) e todas as
// chamadas à API passam pelo apiclient dessa sessão.
package dashboard

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

const (
	contextAPI  = "dashboardAPI"
	contextUser = "dashboardUser"

	photosField = "photos"
)

type Options struct {
	APIBaseURL   string
	Stores       StoreFactory
	HTTPClient   *http.Client
	SessionTTL   time.Duration
	SecureCookie bool
	// fuso da barbearia; define a data sugerida para novos cortes
	Timezone string
}

type Server struct {
	opts Options
}

func NewServer(opts Options) *Server {
	if opts.Stores == nil {
		opts.Stores = MemoryStores()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	return &Server{opts: opts}
}

// Register instala renderer, middlewares e páginas no engine.
func (s *Server) Register(r *gin.Engine) error {
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	if err := validators.RegisterGin(); err != nil {
		return err
	}
	r.HTMLRender = renderer

	r.Use(s.withSession)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/cuts") })
	r.GET("/login", s.LoginPage)
	r.POST("/login", s.Login)
	r.POST("/logout", s.Logout)

	app := r.Group("/")
	app.Use(s.requireLogin)
	{
		app.GET("/cuts", s.CutsPage)
		app.POST("/cuts", s.CreateCut)
		app.GET("/cuts/:id", s.CutPage)
		app.POST("/cuts/:id", s.UpdateCut)
		app.POST("/cuts/:id/delete", s.DeleteCut)
		app.POST("/cuts/:id/photos/:photoId/delete", s.DeletePhoto)

		app.GET("/clients", s.ClientsPage)
		app.POST("/clients", s.CreateClient)
		app.GET("/clients/suggest", s.SuggestClients)
		app.GET("/clients/:id", s.ClientPage)
		app.POST("/clients/:id", s.UpdateClient)
		app.POST("/clients/:id/delete", s.DeleteClient)

		app.GET("/barbers", s.BarbersPage)
		app.POST("/barbers", s.CreateBarber)
		app.POST("/barbers/:id", s.UpdateBarber)
		app.POST("/barbers/:id/delete", s.DeleteBarber)

		app.GET("/users", s.UsersPage)
		app.POST("/users", s.CreateUser)
		app.POST("/users/:id", s.UpdateUser)
		app.POST("/users/:id/delete", s.DeleteUser)
	}
	return nil
}

// ======================================================
// SESSION
// ======================================================

func (s *Server) withSession(c *gin.Context) {
	id := sessionID(c, s.opts.SessionTTL, s.opts.SecureCookie)

	var opts []apiclient.Option
	if s.opts.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(s.opts.HTTPClient))
	}
	c.Set(contextAPI, apiclient.New(s.opts.APIBaseURL, s.opts.Stores(id), opts...))
	c.Next()
}

func (s *Server) requireLogin(c *gin.Context) {
	sess, err := apiFrom(c).Session(c.Request.Context())
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("failed to load dashboard session")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if !sess.Authenticated() {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	// sessões antigas podem ter só o token
	if sess.User == nil {
		user, err := apiFrom(c).Me(c.Request.Context())
		if err != nil && isExpired(err) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		sess.User = user
	}
	c.Set(contextUser, sess.User)
	c.Next()
}

func currentUserID(c *gin.Context) uint {
	if user, ok := c.Get(contextUser); ok {
		if u, ok := user.(*models.User); ok && u != nil {
			return u.ID
		}
	}
	return 0
}

func apiFrom(c *gin.Context) *apiclient.Client {
	return c.MustGet(contextAPI).(*apiclient.Client)
}

func dataFrom(c *gin.Context) *DataContext {
	return NewDataContext(apiFrom(c))
}

// html completa os dados comuns do layout e consome os avisos pendentes.
func (s *Server) html(c *gin.Context, status int, page string, h gin.H) {
	if h == nil {
		h = gin.H{}
	}
	api := apiFrom(c)
	h["Page"] = page
	h["API"] = api
	h["Services"] = domain.Services
	h["PaymentMethods"] = domain.PaymentMethods
	if user, ok := c.Get(contextUser); ok {
		h["User"] = user
	}
	h["Notices"] = api.TakeNotices(c.Request.Context())
	c.HTML(status, page, h)
}

// back redireciona depois de uma mutação; sessão expirada sempre volta ao login.
func back(c *gin.Context, err error, onError, onSuccess string) {
	switch {
	case err != nil && isExpired(err):
		c.Redirect(http.StatusSeeOther, "/login")
	case err != nil:
		c.Redirect(http.StatusSeeOther, onError)
	default:
		c.Redirect(http.StatusSeeOther, onSuccess)
	}
}

func formErrors(err error) map[string]string {
	if fields := validators.Fields(err); fields != nil {
		return fields
	}
	return map[string]string{"form": "Datos inválidos."}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.Redirect(http.StatusSeeOther, "/cuts")
		return 0, false
	}
	return uint(id), true
}

// uploads abre os arquivos enviados no campo "photos". close libera todos.
func uploads(c *gin.Context) (files []Upload, closeAll func(), err error) {
	closeAll = func() {}
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, closeAll, nil
		}
		return nil, closeAll, err
	}

	var opened []multipart.File
	closeAll = func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, fh := range form.File[photosField] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, Upload{Name: fh.Filename, Body: f})
	}
	return files, closeAll, nil
}

// ======================================================
// AUTH
// ======================================================

func (s *Server) LoginPage(c *gin.Context) {
	sess, err := apiFrom(c).Session(c.Request.Context())
	if err == nil && sess.Authenticated() {
		c.Redirect(http.StatusFound, "/cuts")
		return
	}
	s.html(c, http.StatusOK, "login", nil)
}

func (s *Server) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		s.html(c, http.StatusBadRequest, "login", gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	api := apiFrom(c)
	ctx := c.Request.Context()
	if _, err := api.Login(ctx, form.Username, form.Password); err != nil {
		var apiErr *apiclient.APIError
		msg := apiclient.UserMessage(err)
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			msg = "Usuario o contraseña incorrectos."
		}
		api.Notify(ctx, apiclient.LevelError, msg)
		s.html(c, http.StatusUnauthorized, "login", gin.H{"Form": LoginForm{Username: form.Username}})
		return
	}

	api.Notify(ctx, apiclient.LevelSuccess, "Sesión iniciada.")
	c.Redirect(http.StatusSeeOther, "/cuts")
}

func (s *Server) Logout(c *gin.Context) {
	if err := apiFrom(c).Logout(c.Request.Context()); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to clear dashboard session")
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ======================================================
// CUTS
// ======================================================

func tableQuery(c *gin.Context) TableQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	return TableQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Desc:   c.Query("desc") == "1",
		Page:   page,
	}
}

func (s *Server) cutsPage(c *gin.Context, status int, d *DataContext, extra gin.H) {
	h := gin.H{
		"Table":   CutsTable(d.Cuts, tableQuery(c)),
		"Barbers": d.Barbers,
		"Form":    CutForm{Date: timezone.Today(s.opts.Timezone)},
	}
	for k, v := range extra {
		h[k] = v
	}
	s.html(c, status, "cuts", h)
}

func (s *Server) CutsPage(c *gin.Context) {
	d := dataFrom(c)
	if err := d.Load(c.Request.Context()); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	s.cutsPage(c, http.StatusOK, d, nil)
}

func (s *Server) CreateCut(c *gin.Context) {
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form CutForm
	if err := c.ShouldBind(&form); err != nil {
		if loadErr := d.Load(ctx); loadErr != nil && isExpired(loadErr) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.cutsPage(c, http.StatusBadRequest, d, gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	photos, closeAll, err := uploads(c)
	defer closeAll()
	if err != nil {
		d.API().Notify(ctx, apiclient.LevelError, "No se pudieron leer las fotos.")
		c.Redirect(http.StatusSeeOther, "/cuts")
		return
	}

	if err := d.RefetchClients(ctx); err != nil {
		back(c, err, "/cuts", "/cuts")
		return
	}
	cut, err := d.CreateCut(ctx, form.ClientName, form.Input(), photos)
	if cut == nil {
		back(c, err, "/cuts", "/cuts")
		return
	}
	target := "/cuts/" + strconv.FormatUint(uint64(cut.ID), 10)
	back(c, err, target, target)
}

func (s *Server) CutPage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	d := dataFrom(c)
	ctx := c.Request.Context()

	cut, err := d.GetCut(ctx, id)
	if err != nil {
		back(c, err, "/cuts", "/cuts")
		return
	}
	if err := d.RefetchBarbers(ctx); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	s.html(c, http.StatusOK, "cut", gin.H{"Cut": cut, "Barbers": d.Barbers})
}

func (s *Server) UpdateCut(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	d := dataFrom(c)
	ctx := c.Request.Context()
	self := "/cuts/" + c.Param("id")

	var form EditCutForm
	if err := c.ShouldBind(&form); err != nil {
		cut, getErr := d.GetCut(ctx, id)
		if getErr != nil {
			back(c, getErr, "/cuts", "/cuts")
			return
		}
		_ = d.RefetchBarbers(ctx)
		s.html(c, http.StatusBadRequest, "cut", gin.H{"Cut": cut, "Barbers": d.Barbers, "Errors": formErrors(err)})
		return
	}

	photos, closeAll, err := uploads(c)
	defer closeAll()
	if err != nil {
		d.API().Notify(ctx, apiclient.LevelError, "No se pudieron leer las fotos.")
		c.Redirect(http.StatusSeeOther, self)
		return
	}

	back(c, d.UpdateCut(ctx, id, form.Update(), photos), self, self)
}

func (s *Server) DeleteCut(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	err := dataFrom(c).DeleteCut(c.Request.Context(), id)
	back(c, err, "/cuts/"+c.Param("id"), "/cuts")
}

func (s *Server) DeletePhoto(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := uintParam(c, "photoId")
	if !ok {
		return
	}
	self := "/cuts/" + c.Param("id")
	back(c, dataFrom(c).DeletePhoto(c.Request.Context(), id, photoID), self, self)
}

// ======================================================
// CLIENTS
// ======================================================

func (s *Server) clientsPage(c *gin.Context, status int, d *DataContext, extra gin.H) {
	h := gin.H{"Clients": d.Clients, "Query": c.Query("query")}
	for k, v := range extra {
		h[k] = v
	}
	s.html(c, status, "clients", h)
}

func (s *Server) ClientsPage(c *gin.Context) {
	d := dataFrom(c)
	if err := d.SearchClients(c.Request.Context(), c.Query("query")); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	s.clientsPage(c, http.StatusOK, d, nil)
}

func (s *Server) CreateClient(c *gin.Context) {
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form ClientForm
	if err := c.ShouldBind(&form); err != nil {
		if loadErr := d.RefetchClients(ctx); loadErr != nil && isExpired(loadErr) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.clientsPage(c, http.StatusBadRequest, d, gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	_, err := d.CreateClient(ctx, form.Input())
	back(c, err, "/clients", "/clients")
}

// SuggestClients alimenta o autocompletar do formulário de corte.
func (s *Server) SuggestClients(c *gin.Context) {
	d := dataFrom(c)
	if err := d.RefetchClients(c.Request.Context()); err != nil {
		if isExpired(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session_expired"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "api_unavailable"})
		return
	}

	out := SuggestClients(d.Clients, c.Query("term"))
	if out == nil {
		out = []Suggestion{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) clientPage(c *gin.Context, status int, id uint, extra gin.H) {
	d := dataFrom(c)
	ctx := c.Request.Context()

	client, err := d.GetClient(ctx, id)
	if err != nil {
		back(c, err, "/clients", "/clients")
		return
	}
	if err := d.RefetchCuts(ctx); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	history := ClientHistory(d.Cuts, client.ID)
	h := gin.H{
		"Client":   client,
		"History":  history,
		"Favorite": FavoriteBarber(history),
		"Form": ClientForm{
			Name:  client.Name,
			Alias: client.Alias,
			Phone: client.Phone,
			Email: client.Email,
			Notes: client.Notes,
		},
	}
	for k, v := range extra {
		h[k] = v
	}
	s.html(c, status, "client", h)
}

func (s *Server) ClientPage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	s.clientPage(c, http.StatusOK, id, nil)
}

func (s *Server) UpdateClient(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var form ClientForm
	if err := c.ShouldBind(&form); err != nil {
		s.clientPage(c, http.StatusBadRequest, id, gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	self := "/clients/" + c.Param("id")
	back(c, dataFrom(c).UpdateClient(c.Request.Context(), id, form.Update()), self, self)
}

func (s *Server) DeleteClient(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	err := dataFrom(c).DeleteClient(c.Request.Context(), id)
	back(c, err, "/clients/"+c.Param("id"), "/clients")
}

// ======================================================
// BARBERS
// ======================================================

func (s *Server) BarbersPage(c *gin.Context) {
	d := dataFrom(c)
	if err := d.RefetchBarbers(c.Request.Context()); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	s.html(c, http.StatusOK, "barbers", gin.H{"Barbers": d.Barbers})
}

func (s *Server) CreateBarber(c *gin.Context) {
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form BarberForm
	if err := c.ShouldBind(&form); err != nil {
		if loadErr := d.RefetchBarbers(ctx); loadErr != nil && isExpired(loadErr) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		s.html(c, http.StatusBadRequest, "barbers", gin.H{"Barbers": d.Barbers, "Errors": formErrors(err)})
		return
	}
	back(c, d.CreateBarber(ctx, form.Name), "/barbers", "/barbers")
}

func (s *Server) UpdateBarber(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form BarberForm
	if err := c.ShouldBind(&form); err != nil {
		d.API().Notify(ctx, apiclient.LevelError, "El nombre es obligatorio.")
		c.Redirect(http.StatusSeeOther, "/barbers")
		return
	}
	back(c, d.UpdateBarber(ctx, id, form.Name), "/barbers", "/barbers")
}

func (s *Server) DeleteBarber(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	back(c, dataFrom(c).DeleteBarber(c.Request.Context(), id), "/barbers", "/barbers")
}

// ======================================================
// USERS
// ======================================================

func (s *Server) usersPage(c *gin.Context, status int, d *DataContext, extra gin.H) {
	h := gin.H{"Users": d.Users}
	for k, v := range extra {
		h[k] = v
	}
	s.html(c, status, "users", h)
}

func (s *Server) UsersPage(c *gin.Context) {
	d := dataFrom(c)
	if err := d.RefetchUsers(c.Request.Context()); err != nil && isExpired(err) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	s.usersPage(c, http.StatusOK, d, nil)
}

func (s *Server) CreateUser(c *gin.Context) {
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		if loadErr := d.RefetchUsers(ctx); loadErr != nil && isExpired(loadErr) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		form.Password = ""
		s.usersPage(c, http.StatusBadRequest, d, gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}
	back(c, d.CreateUser(ctx, form.Input()), "/users", "/users")
}

func (s *Server) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	d := dataFrom(c)
	ctx := c.Request.Context()

	var form EditUserForm
	if err := c.ShouldBind(&form); err != nil {
		d.API().Notify(ctx, apiclient.LevelError, "Usuario y rol son obligatorios.")
		c.Redirect(http.StatusSeeOther, "/users")
		return
	}

	err := d.UpdateUser(ctx, id, form.Update())
	// o cabeçalho mostra o nome guardado na sessão
	if err == nil && currentUserID(c) == id {
		if _, meErr := d.API().Me(ctx); meErr != nil {
			log := logger.Get()
			log.Warn().Err(meErr).Msg("failed to refresh session user")
		}
	}
	back(c, err, "/users", "/users")
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	back(c, dataFrom(c).DeleteUser(c.Request.Context(), id), "/users", "/users")
}
