package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeStockIn    = "stock_in"   // entrada
	MovementTypeStockOut   = "stock_out"  // salida
	MovementTypeTransfer   = "transfer"   // traslado entre sucursales (atómico)
	MovementTypeAdjustment = "adjustment" // ajuste manual con signo
)

// Clases de contraparte de un movimiento.
const (
	PartyKindSupplier = "supplier"
	PartyKindClient   = "client"
	PartyKindLocation = "location"
	PartyKindDisposal = "disposal"
	PartyKindUnknown  = "unknown"
)

// Razones fijas de baja/descarte (PartyKindDisposal).
const (
	DisposalExpired = "expired"
	DisposalBroken  = "broken"
	DisposalLost    = "lost"
	DisposalOther   = "other" // admite sub-razón en texto libre
)

// Party es la contraparte normalizada de un movimiento, resuelta una sola vez
// al escribir y almacenada inmutable en el registro (nunca re-inferida en lecturas).
type Party struct {
	Kind        string // supplier, client, location, disposal, unknown
	ID          string // vacío si no corresponde a una entidad estructurada
	DisplayName string
}

// MovementRecord es un asiento inmutable del libro de movimientos.
// Nunca se actualiza ni se borra; las correcciones se registran como
// movimientos compensatorios para preservar la auditoría.
// PreviousQuantity/NewQuantity refieren a la sucursal principal afectada
// (para transfer, la sucursal origen).
type MovementRecord struct {
	ID               string
	ProductID        string
	Type             string // stock_in, stock_out, transfer, adjustment
	Quantity         int64  // positiva; con signo solo para adjustment
	Party            Party
	SourceLocationID string // requerida para stock_out, transfer y adjustment
	DestLocationID   string // requerida para stock_in y transfer
	Reason           string
	Notes            string
	PerformedBy      string // ID del actor
	PreviousQuantity int64
	NewQuantity      int64
	Reference        string // token de idempotencia, único si no es vacío
	CreatedAt        time.Time
}
