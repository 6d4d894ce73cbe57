package domain

// Facility площадка, на которой бронируются слоты
type Facility struct {
	ID     string
	Name   string
	Active bool
}

// Template шаблон контента для пожеланий к заказу
type Template struct {
	ID     string
	Name   string
	Active bool
}
