package timezone

import (
	"time"
	_ "time/tzdata"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
)

const DefaultTimezone = "America/Argentina/Buenos_Aires"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location cai no fuso padrão quando tz é vazio ou desconhecido.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today é a data corrente da barbearia no formato de Cut.Date.
func Today(tz string) string {
	return NowIn(tz).Format(domain.DateLayout)
}

// DayStart interpreta uma data YYYY-MM-DD como meia-noite no fuso loc.
func DayStart(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, date, loc)
}
