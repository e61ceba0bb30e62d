package inventory

import (
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/normalize"
)

// Hints aceptados por Resolve. "other_location" es alias histórico de "location".
const (
	HintSupplier      = "supplier"
	HintClient        = "client"
	HintLocation      = "location"
	HintOtherLocation = "other_location"
	HintDisposal      = "disposal"
)

// Nombres legibles para las razones fijas de baja.
var disposalNames = map[string]string{
	entity.DisposalExpired: "vencido",
	entity.DisposalBroken:  "dañado",
	entity.DisposalLost:    "perdido",
	entity.DisposalOther:   "otro",
}

// PartyResolver normaliza la referencia de contraparte de un movimiento a un
// valor etiquetado canónico. Nunca falla: una referencia que no resuelve
// degrada a {kind: unknown, displayName: raw} en vez de bloquear el registro
// del movimiento (completar la auditoría pesa más que frenar la operación).
type PartyResolver struct {
	locationRepo repository.LocationRepository
	clientRepo   repository.ClientRepository
}

// NewPartyResolver construye el resolutor con los repos del directorio.
func NewPartyResolver(locationRepo repository.LocationRepository, clientRepo repository.ClientRepository) *PartyResolver {
	return &PartyResolver{locationRepo: locationRepo, clientRepo: clientRepo}
}

// Resolve resuelve rawID según el hint. Orden: entidad estructurada por ID,
// luego por nombre exacto normalizado, y como último recurso el valor crudo
// como nombre literal (caso proveedores, que no tienen tabla propia).
func (r *PartyResolver) Resolve(kindHint, rawID, disposalDetail string) entity.Party {
	switch kindHint {
	case HintDisposal:
		return r.resolveDisposal(rawID, disposalDetail)
	case HintLocation, HintOtherLocation:
		if p, ok := r.tryLocation(rawID); ok {
			return p
		}
	case HintClient:
		if p, ok := r.tryClient(rawID); ok {
			return p
		}
	case HintSupplier:
		return entity.Party{Kind: entity.PartyKindSupplier, DisplayName: rawID}
	default:
		// Sin hint: probar sucursal y cliente antes de rendirse.
		if p, ok := r.tryLocation(rawID); ok {
			return p
		}
		if p, ok := r.tryClient(rawID); ok {
			return p
		}
	}
	return entity.Party{Kind: entity.PartyKindUnknown, DisplayName: rawID}
}

// resolveDisposal mapea la enumeración fija de razones de baja. Una razón
// fuera del catálogo cae en "other" conservando el texto como sub-razón.
func (r *PartyResolver) resolveDisposal(reason, detail string) entity.Party {
	name, ok := disposalNames[reason]
	if !ok {
		if detail == "" {
			detail = reason
		}
		reason = entity.DisposalOther
		name = disposalNames[entity.DisposalOther]
	}
	if reason == entity.DisposalOther && detail != "" {
		name = name + ": " + detail
	}
	return entity.Party{Kind: entity.PartyKindDisposal, ID: reason, DisplayName: name}
}

func (r *PartyResolver) tryLocation(raw string) (entity.Party, bool) {
	if raw == "" {
		return entity.Party{}, false
	}
	loc, err := r.locationRepo.GetByID(raw)
	if err == nil && loc == nil {
		loc, err = r.locationRepo.GetByName(normalize.Name(raw))
	}
	if err != nil || loc == nil {
		return entity.Party{}, false
	}
	return entity.Party{Kind: entity.PartyKindLocation, ID: loc.ID, DisplayName: loc.Name}, true
}

func (r *PartyResolver) tryClient(raw string) (entity.Party, bool) {
	if raw == "" {
		return entity.Party{}, false
	}
	cl, err := r.clientRepo.GetByID(raw)
	if err == nil && cl == nil {
		cl, err = r.clientRepo.GetByName(normalize.Name(raw))
	}
	if err != nil || cl == nil {
		return entity.Party{}, false
	}
	return entity.Party{Kind: entity.PartyKindClient, ID: cl.ID, DisplayName: cl.Name}, true
}
