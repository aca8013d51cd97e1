package dashboard

import (
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
)

const SessionCookie = "barbershop_session"

// StoreFactory devolve o SessionStore de um navegador, identificado pelo cookie.
type StoreFactory func(sessionID string) apiclient.SessionStore

// RedisStores guarda cada sessão em Redis com o TTL informado.
func RedisStores(client cache.Cmdable, ttl time.Duration) StoreFactory {
	return func(id string) apiclient.SessionStore {
		return apiclient.NewRedisStore(client, id, ttl)
	}
}

// FileStores grava cada sessão em <dir>/<id>.json.
func FileStores(dir string) StoreFactory {
	return func(id string) apiclient.SessionStore {
		return apiclient.NewFileStore(filepath.Join(dir, id+".json"))
	}
}

// MemoryStores mantém as sessões no processo; perdidas ao reiniciar.
func MemoryStores() StoreFactory {
	var mu sync.Mutex
	stores := map[string]*apiclient.MemoryStore{}

	return func(id string) apiclient.SessionStore {
		mu.Lock()
		defer mu.Unlock()

		s, ok := stores[id]
		if !ok {
			s = apiclient.NewMemoryStore()
			stores[id] = s
		}
		return s
	}
}

// sessionID lê o cookie de sessão ou emite um novo.
func sessionID(c *gin.Context, ttl time.Duration, secure bool) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
