package cut

import "slices"

// Serviços oferecidos no formulário de novo corte.
const (
	ServiceCorte      = "Corte"
	ServiceCorteBarba = "Corte + Barba"
	ServiceBarba      = "Barba"
)

const (
	PaymentCash     = "efectivo"
	PaymentTransfer = "transferencia"
)

var Services = []string{ServiceCorte, ServiceCorteBarba, ServiceBarba}

var PaymentMethods = []string{PaymentCash, PaymentTransfer}

// DateLayout é o formato de Cut.Date.
const DateLayout = "2006-01-02"

// ServiceOther agrupa, nas métricas, serviços fora do catálogo.
const ServiceOther = "other"

// ServiceLabel devolve o serviço se ele está no catálogo, senão ServiceOther.
func ServiceLabel(service string) string {
	if slices.Contains(Services, service) {
		return service
	}
	return ServiceOther
}
