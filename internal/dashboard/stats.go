package dashboard

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// FindClientByName compara nomes sem diferenciar maiúsculas e espaços nas pontas.
func FindClientByName(clients []models.Client, name string) *models.Client {
	name = strings.TrimSpace(name)
	for i := range clients {
		if strings.EqualFold(strings.TrimSpace(clients[i].Name), name) {
			return &clients[i]
		}
	}
	return nil
}

// ClientHistory devolve os cortes do cliente, do mais recente para o mais antigo.
func ClientHistory(cuts []models.Cut, clientID uint) []models.Cut {
	var out []models.Cut
	for _, c := range cuts {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// FavoriteBarber é o barbeiro que mais atendeu o cliente; no empate vale quem
// aparece primeiro em history. Sem cortes, devolve "".
func FavoriteBarber(history []models.Cut) string {
	counts := map[uint]int{}
	names := map[uint]string{}
	var order []uint

	for _, c := range history {
		if _, seen := counts[c.BarberID]; !seen {
			order = append(order, c.BarberID)
		}
		counts[c.BarberID]++
		if c.Barber != nil {
			names[c.BarberID] = c.Barber.Name
		}
	}

	best, bestCount := uint(0), 0
	for _, id := range order {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	if bestCount == 0 {
		return ""
	}
	return names[best]
}
