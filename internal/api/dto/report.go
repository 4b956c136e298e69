package dto

type LateDeliveryResponse struct {
	ParcelID    int    `json:"parcel_id"`
	VehicleID   int    `json:"vehicle_id"`
	Deadline    string `json:"deadline"`
	DeliveredAt string `json:"delivered_at"`
}

type ReportResponse struct {
	RunID        string                 `json:"run_id"`
	Complete     bool                   `json:"complete"`
	Delivered    int                    `json:"delivered"`
	Stranded     []int                  `json:"stranded"`
	Late         []LateDeliveryResponse `json:"late"`
	TotalMileage float64                `json:"total_mileage"`
}
