package create_booking

import (
	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActivityScheduleID   int64    // Расписание, на которое резервируются места
	NumberOfPeople       int      // Общее число людей, строго положительное
	AdultCount           int      // Взрослые (по умолчанию 0)
	ChildCount           int      // Дети (по умолчанию 0)
	SeniorCount          int      // Пожилые (по умолчанию 0)
	CompanyID            *int64   // Компания-партнёр (опционально)
	Transport            bool     // Нужен ли трансфер
	PassengerCount       *int     // Пассажиры трансфера (опционально)
	CommissionPercentage *float64 // Ручная комиссия, приоритетнее комиссии компании
	CustomerName         string   // Имя клиента
	CustomerEmail        *string  // Email клиента (опционально)
	CustomerPhone        *string  // Телефон клиента (опционально)
	CreatedBy            *int64   // Пользователь CRM, создавший бронь (опционально)
}

// Response модель ответа с созданным бронированием
// Включает денормализованные данные активности, расписания и компании
type Response struct {
	Booking *domain.Booking
}
