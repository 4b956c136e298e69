package dto

type StopResponse struct {
	Location  int    `json:"location"`
	Label     string `json:"label"`
	ArriveAt  string `json:"arrive_at"`
	ParcelIDs []int  `json:"parcel_ids"`
}

type VehicleResponse struct {
	VehicleID int            `json:"vehicle_id"`
	StartAt   string         `json:"start_at"`
	ReturnAt  string         `json:"return_at"`
	Mileage   float64        `json:"mileage"`
	Route     []int          `json:"route"`
	Stops     []StopResponse `json:"stops"`
}

type ListVehiclesResponse struct {
	Vehicles     []VehicleResponse `json:"vehicles"`
	TotalMileage float64           `json:"total_mileage"`
}
