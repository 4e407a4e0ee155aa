package add_attendees

// Request модель запроса на добавление участников
type Request struct {
	ScheduleID int64 // Расписание, на которое резервируются места
	Quantity   int   // Количество добавляемых участников, строго положительное
}

// Response модель ответа с обновлёнными счётчиками
type Response struct {
	ScheduleID     int64 // ID расписания
	PreviousBooked int   // Счётчик до обновления
	NewBooked      int   // Счётчик после обновления
	Capacity       int   // Вместимость расписания
	Available      int   // Оставшиеся свободные места
}
