package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// DataContext guarda as coleções carregadas da API para uma requisição.
// Toda mutação recarrega a coleção afetada e registra um aviso de sucesso
// ou de erro; o estado local só muda quando a API confirma.
type DataContext struct {
	api *apiclient.Client

	Clients []models.Client
	Barbers []models.Barber
	Cuts    []models.Cut
	Users   []models.User
}

func NewDataContext(api *apiclient.Client) *DataContext {
	return &DataContext{api: api}
}

func (d *DataContext) API() *apiclient.Client { return d.api }

// Load busca clientes, barbeiros e cortes.
func (d *DataContext) Load(ctx context.Context) error {
	if err := d.RefetchClients(ctx); err != nil {
		return err
	}
	if err := d.RefetchBarbers(ctx); err != nil {
		return err
	}
	return d.RefetchCuts(ctx)
}

func (d *DataContext) RefetchClients(ctx context.Context) error {
	clients, err := d.api.ListClients(ctx, "")
	if err != nil {
		return d.fail(ctx, err)
	}
	d.Clients = clients
	return nil
}

func (d *DataContext) RefetchBarbers(ctx context.Context) error {
	barbers, err := d.api.ListBarbers(ctx)
	if err != nil {
		return d.fail(ctx, err)
	}
	d.Barbers = barbers
	return nil
}

func (d *DataContext) RefetchCuts(ctx context.Context) error {
	cuts, err := d.api.ListCuts(ctx, apiclient.CutFilter{})
	if err != nil {
		return d.fail(ctx, err)
	}
	d.Cuts = cuts
	return nil
}

// SearchClients carrega só os clientes que batem com query (filtro da API).
func (d *DataContext) SearchClients(ctx context.Context, query string) error {
	clients, err := d.api.ListClients(ctx, query)
	if err != nil {
		return d.fail(ctx, err)
	}
	d.Clients = clients
	return nil
}

func (d *DataContext) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	c, err := d.api.GetClient(ctx, id)
	if err != nil {
		return nil, d.fail(ctx, err)
	}
	return c, nil
}

func (d *DataContext) GetCut(ctx context.Context, id uint) (*models.Cut, error) {
	c, err := d.api.GetCut(ctx, id)
	if err != nil {
		return nil, d.fail(ctx, err)
	}
	return c, nil
}

func (d *DataContext) fail(ctx context.Context, err error) error {
	// o aviso de sessão expirada já foi registrado pelo cliente
	if !isExpired(err) {
		d.api.Notify(ctx, apiclient.LevelError, apiclient.UserMessage(err))
	}
	return err
}

func (d *DataContext) ok(ctx context.Context, msg string) {
	d.api.Notify(ctx, apiclient.LevelSuccess, msg)
}

// ======================================================
// CLIENTS
// ======================================================

func (d *DataContext) CreateClient(ctx context.Context, in apiclient.ClientInput) (*models.Client, error) {
	c, err := d.api.CreateClient(ctx, in)
	if err != nil {
		return nil, d.fail(ctx, err)
	}
	d.ok(ctx, "Cliente creado.")
	return c, d.RefetchClients(ctx)
}

func (d *DataContext) UpdateClient(ctx context.Context, id uint, in apiclient.ClientUpdate) error {
	if _, err := d.api.UpdateClient(ctx, id, in); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Cliente actualizado.")
	return d.RefetchClients(ctx)
}

// DeleteClient também recarrega os cortes, que são removidos em cascata.
func (d *DataContext) DeleteClient(ctx context.Context, id uint) error {
	if _, err := d.api.DeleteClient(ctx, id); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Cliente eliminado.")
	if err := d.RefetchClients(ctx); err != nil {
		return err
	}
	return d.RefetchCuts(ctx)
}

// ======================================================
// BARBERS
// ======================================================

func (d *DataContext) CreateBarber(ctx context.Context, name string) error {
	if _, err := d.api.CreateBarber(ctx, apiclient.BarberInput{Name: name}); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Barbero creado.")
	return d.RefetchBarbers(ctx)
}

func (d *DataContext) UpdateBarber(ctx context.Context, id uint, name string) error {
	if _, err := d.api.UpdateBarber(ctx, id, apiclient.BarberInput{Name: name}); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Barbero actualizado.")
	return d.RefetchBarbers(ctx)
}

func (d *DataContext) DeleteBarber(ctx context.Context, id uint) error {
	if _, err := d.api.DeleteBarber(ctx, id); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Barbero eliminado.")
	if err := d.RefetchBarbers(ctx); err != nil {
		return err
	}
	return d.RefetchCuts(ctx)
}

// ======================================================
// USERS
// ======================================================

func (d *DataContext) RefetchUsers(ctx context.Context) error {
	users, err := d.api.ListUsers(ctx)
	if err != nil {
		return d.fail(ctx, err)
	}
	d.Users = users
	return nil
}

func (d *DataContext) CreateUser(ctx context.Context, in apiclient.UserInput) error {
	if _, err := d.api.CreateUser(ctx, in); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Usuario creado.")
	return d.RefetchUsers(ctx)
}

func (d *DataContext) UpdateUser(ctx context.Context, id uint, in apiclient.UserUpdate) error {
	if _, err := d.api.UpdateUser(ctx, id, in); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Usuario actualizado.")
	return d.RefetchUsers(ctx)
}

func (d *DataContext) DeleteUser(ctx context.Context, id uint) error {
	if _, err := d.api.DeleteUser(ctx, id); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Usuario eliminado.")
	return d.RefetchUsers(ctx)
}

// ======================================================
// CUTS
// ======================================================

type Upload struct {
	Name string
	Body io.Reader
}

// CreateCut cria o cliente pelo nome quando ele ainda não existe, registra o
// corte e envia as fotos uma a uma. Falha numa foto não desfaz o corte.
func (d *DataContext) CreateCut(ctx context.Context, clientName string, in apiclient.CutInput, photos []Upload) (*models.Cut, error) {
	if in.ClientID == 0 {
		client := FindClientByName(d.Clients, clientName)
		if client == nil {
			created, err := d.api.CreateClient(ctx, apiclient.ClientInput{Name: clientName})
			if err != nil {
				return nil, d.fail(ctx, err)
			}
			client = created
		}
		in.ClientID = client.ID
	}

	cut, err := d.api.CreateCut(ctx, in)
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	failed := 0
	for _, p := range photos {
		if _, err := d.api.UploadPhoto(ctx, cut.ID, p.Name, p.Body); err != nil {
			if isExpired(err) {
				return cut, err
			}
			failed++
			d.api.Notify(ctx, apiclient.LevelError, fmt.Sprintf("No se pudo subir %s: %s", p.Name, apiclient.UserMessage(err)))
		}
	}

	if failed == 0 {
		d.ok(ctx, "Corte registrado.")
	} else {
		d.ok(ctx, fmt.Sprintf("Corte registrado; %d foto(s) no se pudieron subir.", failed))
	}

	if err := d.RefetchClients(ctx); err != nil {
		return cut, err
	}
	return cut, d.RefetchCuts(ctx)
}

func (d *DataContext) UpdateCut(ctx context.Context, id uint, in apiclient.CutUpdate, photos []Upload) error {
	if _, err := d.api.UpdateCut(ctx, id, in); err != nil {
		return d.fail(ctx, err)
	}
	for _, p := range photos {
		if _, err := d.api.UploadPhoto(ctx, id, p.Name, p.Body); err != nil {
			return d.fail(ctx, err)
		}
	}
	d.ok(ctx, "Corte actualizado.")
	return d.RefetchCuts(ctx)
}

func (d *DataContext) DeleteCut(ctx context.Context, id uint) error {
	if _, err := d.api.DeleteCut(ctx, id); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Corte eliminado.")
	return d.RefetchCuts(ctx)
}

func (d *DataContext) DeletePhoto(ctx context.Context, cutID, photoID uint) error {
	if err := d.api.DeletePhoto(ctx, cutID, photoID); err != nil {
		return d.fail(ctx, err)
	}
	d.ok(ctx, "Foto eliminada.")
	return d.RefetchCuts(ctx)
}
