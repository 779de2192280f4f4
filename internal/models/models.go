package models

import "time"

// RegisterRequest - модель для регистрации пользователя
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest - модель для входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse - модель ответа при входе или регистрации
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// CreateAreaRequest - модель для создания парковки
type CreateAreaRequest struct {
	Name         string   `json:"name" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	TotalSlots   *int     `json:"totalSlots" binding:"required,gte=0,lte=10000"`
	PricePerHour *float64 `json:"pricePerHour" binding:"required,gte=0"`
}

// UpdateAreaRequest - модель для редактирования парковки
type UpdateAreaRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Location     *string  `json:"location" binding:"omitempty,min=1"`
	TotalSlots   *int     `json:"totalSlots" binding:"omitempty,gte=0,lte=10000"`
	PricePerHour *float64 `json:"pricePerHour" binding:"omitempty,gte=0"`
}

// AreaPatch is a partial update applied to a parking area
type AreaPatch struct {
	Name         *string
	Location     *string
	TotalSlots   *int
	PricePerHour *float64
}

// CreateTimeSlotRequest - модель для создания временного окна
type CreateTimeSlotRequest struct {
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	Date      string `json:"date" binding:"omitempty,isodate"`
}

// UpdateTimeSlotRequest - модель для редактирования временного окна
type UpdateTimeSlotRequest struct {
	StartTime *string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string `json:"endTime" binding:"omitempty,hhmm"`
	Date      *string `json:"date" binding:"omitempty,isodate"`
}

// TimeSlotPatch is a partial update applied to a time slot
type TimeSlotPatch struct {
	StartTime *string
	EndTime   *string
	Date      *string
}

// CreateBookingRequest - модель для создания бронирования
type CreateBookingRequest struct {
	AreaID        string `json:"areaId" binding:"required"`
	SlotID        string `json:"slotId" binding:"required"`
	TimeSlotID    string `json:"timeSlotId" binding:"required"`
	Date          string `json:"date" binding:"required,isodate"`
	VehicleNumber string `json:"vehicleNumber" binding:"omitempty,max=20"`
}

// UpdateBookingStatusRequest - модель для одобрения или отклонения бронирования
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// EditBookingRequest - модель для редактирования бронирования администратором
type EditBookingRequest struct {
	AreaID        *string        `json:"areaId" binding:"omitempty,min=1"`
	SlotID        *string        `json:"slotId" binding:"omitempty,min=1"`
	TimeSlotID    *string        `json:"timeSlotId" binding:"omitempty,min=1"`
	Date          *string        `json:"date" binding:"omitempty,isodate"`
	VehicleNumber *string        `json:"vehicleNumber" binding:"omitempty,max=20"`
	Status        *BookingStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// BookingPatch is a shallow partial update. Nil fields are left untouched.
type BookingPatch struct {
	UserID        *string
	UserName      *string
	AreaID        *string
	AreaName      *string
	SlotID        *string
	SlotNumber    *int
	TimeSlotID    *string
	StartTime     *string
	EndTime       *string
	Date          *string
	Status        *BookingStatus
	TotalAmount   *float64
	VehicleNumber *string
}

// Apply merges the non-nil fields of p into b.
func (p BookingPatch) Apply(b *Booking) {
	if p.UserID != nil {
		b.UserID = *p.UserID
	}
	if p.UserName != nil {
		b.UserName = *p.UserName
	}
	if p.AreaID != nil {
		b.AreaID = *p.AreaID
	}
	if p.AreaName != nil {
		b.AreaName = *p.AreaName
	}
	if p.SlotID != nil {
		b.SlotID = *p.SlotID
	}
	if p.SlotNumber != nil {
		b.SlotNumber = *p.SlotNumber
	}
	if p.TimeSlotID != nil {
		b.TimeSlotID = *p.TimeSlotID
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.TotalAmount != nil {
		b.TotalAmount = *p.TotalAmount
	}
	if p.VehicleNumber != nil {
		b.VehicleNumber = *p.VehicleNumber
	}
}

// BookingFilter narrows a booking listing. Empty fields match everything.
type BookingFilter struct {
	Query  string `form:"q"`
	Status string `form:"status" binding:"omitempty,oneof=all pending approved rejected"`
}

// AvailableSlotsQuery - параметры запроса свободных мест
type AvailableSlotsQuery struct {
	AreaID     string `form:"area_id" binding:"required"`
	TimeSlotID string `form:"time_slot_id" binding:"required"`
	Date       string `form:"date" binding:"required,isodate"`
}

// DayCount - количество бронирований за день
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthCount - количество бронирований за месяц
type MonthCount struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Statistics - агрегированная статистика бронирований
type Statistics struct {
	Total    int          `json:"totalBookings"`
	Pending  int          `json:"pending"`
	Approved int          `json:"approved"`
	Rejected int          `json:"rejected"`
	ByDay    []DayCount   `json:"bookingsByDay"`
	ByMonth  []MonthCount `json:"bookingsByMonth"`
}
