package dashboard

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const maxSuggestions = 5

type Suggestion struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// SuggestClients ranqueia clientes cujo nome ou apelido contém as letras de
// term na ordem, ignorando acentos e maiúsculas. Menor distância primeiro.
func SuggestClients(clients []models.Client, term string) []Suggestion {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	targets := make([]string, 0, len(clients)*2)
	owners := make([]int, 0, len(clients)*2)
	for i, c := range clients {
		targets = append(targets, c.Name)
		owners = append(owners, i)
		if c.Alias != "" {
			targets = append(targets, c.Alias)
			owners = append(owners, i)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	seen := map[int]bool{}
	var out []Suggestion
	for _, r := range ranks {
		idx := owners[r.OriginalIndex]
		if seen[idx] {
			continue
		}
		seen[idx] = true

		c := clients[idx]
		out = append(out, Suggestion{ID: c.ID, Name: c.Name, Alias: c.Alias})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
