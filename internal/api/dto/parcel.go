package dto

type ParcelResponse struct {
	ParcelID    int     `json:"parcel_id"`
	VehicleID   *int    `json:"vehicle_id"`
	Address     string  `json:"address"`
	Deadline    string  `json:"deadline"`
	Weight      string  `json:"weight"`
	Status      string  `json:"status"`
	DeliveredAt *string `json:"delivered_at"`
}

type ListParcelsResponse struct {
	At      string           `json:"at"`
	Parcels []ParcelResponse `json:"parcels"`
}
