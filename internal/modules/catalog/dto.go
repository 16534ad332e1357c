package catalog

type CreateStationRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Latitude  string `json:"latitude" binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
	City      string `json:"city" binding:"required"`
}

type UpdateStationRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Latitude  string `json:"latitude" binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
	City      string `json:"city" binding:"required"`
}

type CreateTrainRequest struct {
	Name     string `json:"name" binding:"required"`
	Class    string `json:"class" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateTrainRequest struct {
	Name     string `json:"name" binding:"required"`
	Class    string `json:"class" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type CreateRouteRequest struct {
	OriginID      string `json:"origin_id" binding:"required,uuid"`
	DestinationID string `json:"destination_id" binding:"required,uuid"`
}

type UpdateRouteRequest struct {
	OriginID      string `json:"origin_id" binding:"required,uuid"`
	DestinationID string `json:"destination_id" binding:"required,uuid"`
}

type ListQuery struct {
	City   string `form:"city"`
	Limit  int    `form:"limit,default=10"`
	Offset int    `form:"offset,default=0"`
}
