package update_order_status

import "github.com/m04kA/SMC-FacilityBooking/internal/service/orders/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID:  userID,
		Status:  r.Status,
		Comment: r.Comment,
	}
}
