package dto

// LocationQuantityDTO cantidad de un producto en una sucursal.
type LocationQuantityDTO struct {
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Version    int64  `json:"version"`
}

// ProductStockResponse respuesta de GET /api/products/:id/stock.
// TotalQuantity siempre es la suma de PerLocation (nunca se almacena aparte).
type ProductStockResponse struct {
	ProductID     string                `json:"product_id"`
	Status        string                `json:"status"`
	TotalQuantity int64                 `json:"total_quantity"`
	PerLocation   []LocationQuantityDTO `json:"per_location"`
}
