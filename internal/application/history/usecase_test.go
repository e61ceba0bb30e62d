package history_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/history"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles mínimos de las dos fuentes de la línea de tiempo
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovRepo struct {
	records []*entity.MovementRecord
	// actorLocation simula el join con users para el alcance por sucursal.
	actorLocation map[string]string
}

var _ repository.MovementRepository = (*fakeMovRepo)(nil)

func (r *fakeMovRepo) Create(*entity.MovementRecord) error { panic("solo lectura") }
func (r *fakeMovRepo) GetByID(string) (*entity.MovementRecord, error) {
	return nil, nil
}
func (r *fakeMovRepo) GetByReference(string) (*entity.MovementRecord, error) {
	return nil, nil
}

func (r *fakeMovRepo) List(filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	return r.filtered(filter, ""), nil
}

func (r *fakeMovRepo) ListByActorLocation(locationID string, filter repository.MovementFilter) ([]*entity.MovementRecord, error) {
	return r.filtered(filter, locationID), nil
}

func (r *fakeMovRepo) filtered(filter repository.MovementFilter, actorLocation string) []*entity.MovementRecord {
	var out []*entity.MovementRecord
	for _, m := range r.records {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && m.SourceLocationID != filter.LocationID && m.DestLocationID != filter.LocationID {
			continue
		}
		if len(filter.Types) > 0 && !containsStr(filter.Types, m.Type) {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		if actorLocation != "" && r.actorLocation[m.PerformedBy] != actorLocation {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

type fakeAuditRepo struct {
	events        []*entity.AuditEvent
	actorLocation map[string]string
}

var _ repository.AuditRepository = (*fakeAuditRepo)(nil)

func (r *fakeAuditRepo) Create(*entity.AuditEvent) error { panic("solo lectura") }

func (r *fakeAuditRepo) List(filter repository.AuditFilter) ([]*entity.AuditEvent, error) {
	var out []*entity.AuditEvent
	for _, e := range r.events {
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		if len(filter.Actions) > 0 && !containsStr(filter.Actions, e.Action) {
			continue
		}
		if filter.From != nil && e.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.OccurredAt.After(*filter.To) {
			continue
		}
		if filter.ActorLocationID != "" && r.actorLocation[e.ActorID] != filter.ActorLocationID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// ── fixture ──────────────────────────────────────────────────────────────────

var base = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// newTimelineFixture arma una historia conocida para el producto prod-1:
//
//	t+0  product_created (user-a, sucursal loc-1)
//	t+1h stock_in 23    (user-a)
//	t+2h product_updated (user-b, sucursal loc-2)
//	t+3h stock_out 4    (user-b)
func newTimelineFixture() (*history.HistoryUseCase, *fakeMovRepo, *fakeAuditRepo) {
	actorLoc := map[string]string{"user-a": "loc-1", "user-b": "loc-2"}
	movs := &fakeMovRepo{
		actorLocation: actorLoc,
		records: []*entity.MovementRecord{
			{
				ID: "mov-1", ProductID: "prod-1", Type: entity.MovementTypeStockIn,
				Quantity: 23, DestLocationID: "loc-1", PerformedBy: "user-a",
				Party:     entity.Party{Kind: entity.PartyKindSupplier, DisplayName: "Importadora Andina"},
				CreatedAt: base.Add(time.Hour),
			},
			{
				ID: "mov-2", ProductID: "prod-1", Type: entity.MovementTypeStockOut,
				Quantity: 4, SourceLocationID: "loc-1", PerformedBy: "user-b",
				Party:     entity.Party{Kind: entity.PartyKindClient, DisplayName: "Ferretería El Puerto"},
				CreatedAt: base.Add(3 * time.Hour),
			},
		},
	}
	audits := &fakeAuditRepo{
		actorLocation: actorLoc,
		events: []*entity.AuditEvent{
			{
				ID: "aud-1", Action: entity.AuditProductCreated, ProductID: "prod-1",
				ActorID: "user-a", Description: "producto creado", OccurredAt: base,
			},
			{
				ID: "aud-2", Action: entity.AuditProductUpdated, ProductID: "prod-1",
				ActorID: "user-b", Description: "producto editado", OccurredAt: base.Add(2 * time.Hour),
			},
		},
	}
	return history.NewHistoryUseCase(movs, audits), movs, audits
}

func ids(events []*entity.AuditEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestQueryHistory_MezclaOrdenadaDescendente(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	events, err := uc.QueryHistory(context.Background(), history.Filter{ProductID: "prod-1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"mov-2", "aud-2", "mov-1", "aud-1"}, ids(events),
		"las dos fuentes se mezclan del más reciente al más antiguo")

	// Los movimientos llegan con el asiento original adjunto.
	assert.NotNil(t, events[0].Movement)
	assert.Equal(t, entity.MovementTypeStockOut, events[0].Action)
	assert.Nil(t, events[1].Movement, "eventos de catálogo no llevan asiento")
}

func TestQueryHistory_FiltroSoloMovimientos(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	events, err := uc.QueryHistory(context.Background(), history.Filter{
		ProductID: "prod-1",
		Actions:   []string{entity.MovementTypeStockIn, entity.MovementTypeStockOut},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mov-2", "mov-1"}, ids(events))
}

func TestQueryHistory_FiltroSoloCatalogo(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	events, err := uc.QueryHistory(context.Background(), history.Filter{
		ProductID: "prod-1",
		Actions:   []string{entity.AuditProductUpdated},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"aud-2"}, ids(events))
}

func TestQueryHistory_RangoDeFechas(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	from := base.Add(30 * time.Minute)
	to := base.Add(150 * time.Minute)
	events, err := uc.QueryHistory(context.Background(), history.Filter{
		ProductID: "prod-1",
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"aud-2", "mov-1"}, ids(events), "From/To son inclusivos sobre ambas fuentes")
}

func TestQueryHistory_Paginacion(t *testing.T) {
	uc, _, _ := newTimelineFixture()
	ctx := context.Background()

	page1, err := uc.QueryHistory(ctx, history.Filter{ProductID: "prod-1", Limit: 2})
	require.NoError(t, err)
	page2, err := uc.QueryHistory(ctx, history.Filter{ProductID: "prod-1", Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"mov-2", "aud-2"}, ids(page1))
	assert.Equal(t, []string{"mov-1", "aud-1"}, ids(page2))
}

func TestQueryHistory_AlcancePorSucursalDelActor(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	events, err := uc.QueryHistory(context.Background(), history.Filter{
		ProductID:       "prod-1",
		ActorLocationID: "loc-2",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mov-2", "aud-2"}, ids(events),
		"solo eventos de actores de la sucursal loc-2")
}

func TestQueryHistory_SinResultadosEsRespuestaValida(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	events, err := uc.QueryHistory(context.Background(), history.Filter{ProductID: "prod-sin-historia"})
	require.NoError(t, err, "cero eventos no es un error")
	assert.Empty(t, events)
	assert.NotNil(t, events, "lista vacía, no nil")
}

func TestQueryMovements_FiltraPorSucursalTocada(t *testing.T) {
	uc, _, _ := newTimelineFixture()

	records, err := uc.QueryMovements(context.Background(), history.Filter{
		ProductID:  "prod-1",
		LocationID: "loc-1",
	})
	require.NoError(t, err)
	require.Len(t, records, 2, "loc-1 aparece como destino de mov-1 y origen de mov-2")
	assert.Equal(t, "mov-2", records[0].ID)
}
