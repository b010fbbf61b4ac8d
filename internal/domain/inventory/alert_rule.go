package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EvaluateAlert decide si el estado del registro amerita una alerta nueva.
// Es pura: solo depende del registro y de las alertas no reconocidas existentes.
// Devuelve nil si el stock es normal o si ya existe una alerta pendiente de la misma categoría.
// La alerta devuelta no tiene ID; lo asigna quien la persiste.
func EvaluateAlert(record entity.StockRecord, unacknowledged []*entity.Alert, now time.Time) *entity.Alert {
	level := ClassifyLevel(record.QuantityOnHand, record.ReorderThreshold)
	if level == entity.StockLevelNormal {
		return nil
	}

	// Un Caser guarda estado: uno por llamada.
	name := cases.Title(language.Spanish).String(record.Name)
	category := entity.AlertCategoryStockLow
	severity := entity.AlertSeverityMedium
	title := "Stock bajo: " + name
	if level == entity.StockLevelCritical {
		category = entity.AlertCategoryStockCritical
		severity = entity.AlertSeverityCritical
		title = "Stock crítico: " + name
	}

	for _, a := range unacknowledged {
		if a == nil || a.Acknowledged {
			continue
		}
		if a.StockRecordID == record.ID && a.Category == category {
			return nil
		}
	}

	return &entity.Alert{
		StockRecordID: record.ID,
		SiteID:        record.SiteID,
		Category:      category,
		Severity:      severity,
		Title:         title,
		Message: fmt.Sprintf("Quedan %s %s (mínimo %s)",
			record.QuantityOnHand.String(), record.Unit, record.ReorderThreshold.String()),
		CreatedAt: now,
	}
}
