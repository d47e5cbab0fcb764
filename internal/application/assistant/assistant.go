// Package assistant asistente conversacional: identifica el insumo pedido por el
// operador y arma un reporte con estado de red, compras y transferencia lateral.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
	"github.com/jhoicas/swiftstock-api/internal/application/lateral"
	"github.com/jhoicas/swiftstock-api/internal/application/network"
	"github.com/jhoicas/swiftstock-api/internal/application/ports"
	"github.com/jhoicas/swiftstock-api/internal/domain"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
)

// Mensajes fijos para el operador.
const (
	MsgNotIdentified = "❓ No pude identificar un insumo médico en tu consulta. Menciona el nombre (por ejemplo 'Amoxicillin' u 'Oxytocin')."
	MsgUnavailable   = "⚠️ No pude consultar el inventario en este momento. Intenta de nuevo en unos segundos."
)

// ItemCatalog nombres de insumo conocidos.
type ItemCatalog interface {
	ListItems(ctx context.Context) ([]string, error)
}

// StatusReader estado clasificado del corte más reciente.
type StatusReader interface {
	Rows(ctx context.Context, f network.Filter) ([]network.Row, error)
}

// ReorderReader fila de compras más urgente de un insumo.
type ReorderReader interface {
	ForItem(ctx context.Context, item string) (*dto.ReorderSuggestionDTO, error)
}

// SupplyFinder búsqueda de excedente cercano.
type SupplyFinder interface {
	FindLateralSupply(ctx context.Context, q lateral.Query) ([]entity.NeighborMatch, error)
}

// Reply resultado de un turno.
type Reply struct {
	ItemName string
	Resolved bool
	Message  Message
}

// Assistant orquesta resolución de insumo y reporte.
type Assistant struct {
	items    ItemCatalog
	resolver ports.ItemResolver
	status   StatusReader
	reorder  ReorderReader
	supply   SupplyFinder
	log      zerolog.Logger
}

// New construye el asistente.
func New(items ItemCatalog, resolver ports.ItemResolver, status StatusReader, reorder ReorderReader, supply SupplyFinder, log zerolog.Logger) *Assistant {
	return &Assistant{
		items:    items,
		resolver: resolver,
		status:   status,
		reorder:  reorder,
		supply:   supply,
		log:      log,
	}
}

// Reply responde al texto del operador en el contexto de la sesión. Nunca devuelve
// error: los fallos de infraestructura se convierten en un mensaje para el operador
// y la sesión sigue utilizable. No modifica la sesión.
func (a *Assistant) Reply(ctx context.Context, s *Session, text string) Reply {
	known, err := a.items.ListItems(ctx)
	if err != nil {
		a.log.Error().Err(err).Str("session_id", s.ID).Msg("asistente: listar insumos")
		return Reply{Message: assistantMsg(MsgUnavailable)}
	}

	item, ok, err := a.resolver.ResolveItemName(ctx, text, known)
	if err != nil {
		a.log.Error().Err(err).Str("session_id", s.ID).Msg("asistente: resolver insumo")
		return Reply{Message: assistantMsg(MsgUnavailable)}
	}
	if !ok {
		return Reply{Message: assistantMsg(MsgNotIdentified)}
	}

	report, err := a.report(ctx, s, item)
	if err != nil {
		a.log.Error().Err(err).Str("session_id", s.ID).Str("item", item).Msg("asistente: armar reporte")
		return Reply{ItemName: item, Resolved: true, Message: assistantMsg(MsgUnavailable)}
	}
	return Reply{ItemName: item, Resolved: true, Message: assistantMsg(report)}
}

func assistantMsg(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func (a *Assistant) report(ctx context.Context, s *Session, item string) (string, error) {
	rows, err := a.status.Rows(ctx, network.Filter{ItemName: item})
	if err != nil {
		return "", err
	}
	var critical []network.Row
	for _, r := range rows {
		if r.Status == entity.StockStatusCritical {
			critical = append(critical, r)
		}
	}

	suggestion, err := a.reorder.ForItem(ctx, item)
	if err != nil {
		return "", err
	}
	urgent := suggestion != nil && suggestion.Priority == string(entity.ReorderPriorityUrgent)

	var statusLine string
	switch {
	case len(critical) > 0:
		statusLine = fmt.Sprintf("🔴 **CRÍTICO:** quiebres de stock activos en %d instalación(es).", len(critical))
	case urgent:
		statusLine = "🟠 **ALERTA:** el nivel de suministro de la red está bajando."
	default:
		statusLine = "🟢 **ESTABLE:** la cadena de suministro está estable."
	}

	procurementLine := "✅ Compras: sin reorden inmediato."
	if suggestion != nil {
		days := suggestion.PredictedStockoutDays.StringFixed(0)
		if urgent {
			procurementLine = fmt.Sprintf("🚨 **ALERTA DE COMPRAS:**\n- Quiebre previsto: %s días\n- Pedido recomendado: %s unidades de inmediato.",
				days, suggestion.SuggestedOrderQty.StringFixed(0))
		} else {
			procurementLine = fmt.Sprintf("⚠️ **En observación:** quiebre previsto en %s días.", days)
		}
	}

	logisticsLine, err := a.logistics(ctx, s, item, rows, critical)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### 🔎 Análisis de: %s\n%s\n\n---\n%s\n\n---\n%s", item, statusLine, procurementLine, logisticsLine)
	return b.String(), nil
}

// logistics elige la instalación destino (la de la sesión, si no la primera en
// estado crítico, si no la primera del corte) y busca el excedente más cercano.
func (a *Assistant) logistics(ctx context.Context, s *Session, item string, rows, critical []network.Row) (string, error) {
	target := s.FacilityID
	if target == "" && len(critical) > 0 {
		target = critical[0].Facility.ID
	}
	if target == "" && len(rows) > 0 {
		target = rows[0].Facility.ID
	}
	if target == "" {
		return "❌ **Alerta logística:** no hay excedente cercano para transferencia lateral.", nil
	}

	matches, err := a.supply.FindLateralSupply(ctx, lateral.Query{SourceFacilityID: target, ItemName: item})
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("❌ **Alerta logística:** la instalación %s no existe en la red.", target), nil
	}
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "❌ **Alerta logística:** no hay excedente cercano para transferencia lateral.", nil
	}
	top := matches[0]
	return fmt.Sprintf("🚚 **Solución logística:**\nExcedente más cercano a %s en **%s** (%.1f km, %d unidades disponibles).",
		top.Source.Name, top.Candidate.Name, top.DistanceKm, top.AvailableStock), nil
}
