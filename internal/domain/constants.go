package domain

// Default configuration values
const (
	DefaultStepTimeMinutes      = 30
	DefaultLeadTimeMinutes      = 60
	DefaultBookingNoticeMinutes = 30
	DefaultHoldTimeoutMinutes   = 15
	DefaultMaxSlotsPerOrder     = 5
)

// DefaultPrice цена слота по умолчанию
const DefaultPrice Money = 50

// Business validation constants
const (
	MaxStoryMessageLength = 500
	MaxCommentLength      = 500
	MaxTimeConfigName     = 100
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// LiveStatuses статусы заказов, которые могут удерживать слоты
// NEW удерживает слот только в пределах HOLD_TIMEOUT
var LiveStatuses = []OrderStatus{
	StatusNew,
	StatusPaid,
	StatusApproved,
}
