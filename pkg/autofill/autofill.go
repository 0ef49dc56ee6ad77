// Package autofill provides deterministic sample data for the stock
// templates. The wizard binary uses it behind a flag for demos; tests use it
// as known-good snapshots.
package autofill

import (
	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/templates"
)

// Values returns a snapshot that validates against the stock template for
// the given document type. Unknown types return nil.
func Values(t templates.DocumentType) schema.Snapshot {
	switch t {
	case templates.Peticion:
		return schema.Snapshot{
			"fullName":         "María Fernanda Ruiz",
			"documentId":       "52841736",
			"email":            "maria.ruiz@example.com",
			"phone":            "3015557788",
			"entity":           "Secretaría Distrital de Salud",
			"subject":          "Solicitud de historia clínica",
			"petition":         "Solicito copia íntegra de mi historia clínica de los últimos cinco años.",
			"notificationCity": "Bogotá",
		}
	case templates.Tutela:
		return schema.Snapshot{
			"fullName":        "Carlos Andrés Pardo",
			"documentId":      "80236914",
			"email":           "carlos.pardo@example.com",
			"defendantEntity": "EPS Salud Total",
			"violatedRights":  []string{"Derecho a la salud", "Mínimo vital"},
			"facts":           "El 3 de marzo radiqué la orden médica y la EPS no ha autorizado el procedimiento.",
			"claims":          "Ordenar a la accionada autorizar y practicar el procedimiento en un plazo de 48 horas.",
		}
	case templates.Incidente:
		return schema.Snapshot{
			"fullName":              "Lucía Martínez Oyola",
			"documentId":            "43118205",
			"email":                 "lucia.martinez@example.com",
			"rulingReference":       "2024-00123-00",
			"procedureType":         "audiencia-virtual",
			"hearingPlatform":       "Meet",
			"virtualAudienceReason": "Resido fuera de la ciudad sede del despacho.",
			"breachDescription":     "Han pasado cuarenta días desde el fallo sin que la entidad cumpla lo ordenado.",
		}
	default:
		return nil
	}
}
