package schedule

import "time"

type CreateScheduleRequest struct {
	TrainID       string    `json:"train_id" binding:"required,uuid"`
	RouteID       string    `json:"route_id" binding:"required,uuid"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Price         float64   `json:"price" binding:"min=0"`
}

type UpdateScheduleRequest struct {
	TrainID       string    `json:"train_id" binding:"required,uuid"`
	RouteID       string    `json:"route_id" binding:"required,uuid"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Price         float64   `json:"price" binding:"min=0"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}
