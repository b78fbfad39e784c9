package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores Prometheus de la aplicación. Cada instancia
// usa su propio registry para poder levantar más de un router en tests sin
// chocar con el registro global.
type Metrics struct {
	registry *prometheus.Registry

	UsersRegistered  prometheus.Counter
	Logins           prometheus.Counter
	AdoptionsCreated prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "pet_adoption_users_registered_total",
			Help: "Total de identidades registradas.",
		}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "pet_adoption_logins_total",
			Help: "Total de logins exitosos.",
		}),
		AdoptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pet_adoption_adoptions_created_total",
			Help: "Total de adopciones registradas.",
		}),
	}
}

// Handler expone el registry propio en /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
