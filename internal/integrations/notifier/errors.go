package notifier

import "errors"

var (
	// ErrInvalidIntent возвращается при попытке опубликовать пустое уведомление
	ErrInvalidIntent = errors.New("notifier: invalid notify intent")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("notifier: failed to publish message")
)
