package domain

import "time"

// BookingSettings параметры движка бронирования
// Задаются конфигурацией, не меняются в рамках запроса
type BookingSettings struct {
	StepTimeMinutes      int   // Шаг сетки и длительность одного слота
	LeadTimeMinutes      int   // Насколько позже текущего момента должен начинаться слот, чтобы попасть в выдачу
	BookingNoticeMinutes int   // Минимальный запас времени при бронировании на сегодня
	HoldTimeoutMinutes   int   // Сколько минут неоплаченный заказ удерживает слоты
	MaxSlotsPerOrder     int   // Максимум интервалов в одном заказе
	DefaultPrice         Money // Цена слота, если не найдено ни одного правила
}

// DefaultBookingSettings значения по умолчанию
func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		StepTimeMinutes:      DefaultStepTimeMinutes,
		LeadTimeMinutes:      DefaultLeadTimeMinutes,
		BookingNoticeMinutes: DefaultBookingNoticeMinutes,
		HoldTimeoutMinutes:   DefaultHoldTimeoutMinutes,
		MaxSlotsPerOrder:     DefaultMaxSlotsPerOrder,
		DefaultPrice:         DefaultPrice,
	}
}

// HoldTimeout длительность удержания слота неоплаченным заказом
func (s BookingSettings) HoldTimeout() time.Duration {
	return time.Duration(s.HoldTimeoutMinutes) * time.Minute
}

// LeadTime минимальный отступ от текущего момента для выдачи доступных слотов
func (s BookingSettings) LeadTime() time.Duration {
	return time.Duration(s.LeadTimeMinutes) * time.Minute
}

// BookingNotice минимальный отступ от текущего момента при бронировании
func (s BookingSettings) BookingNotice() time.Duration {
	return time.Duration(s.BookingNoticeMinutes) * time.Minute
}

// GridSize количество точек сетки за сутки
func (s BookingSettings) GridSize() int {
	return 24 * 60 / s.StepTimeMinutes
}
