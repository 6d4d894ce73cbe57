package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.FacilityID) == "" {
		return fmt.Errorf("%w: facilityID is required", ErrInvalidInput)
	}

	for i, iv := range req.Times {
		if iv.Date.IsZero() {
			return fmt.Errorf("%w: times[%d]: date is required", ErrInvalidInput, i)
		}
		if err := iv.Start.Validate(); err != nil {
			return fmt.Errorf("%w: times[%d]: invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if err := iv.End.Validate(); err != nil {
			return fmt.Errorf("%w: times[%d]: invalid endTime: %v", ErrInvalidInput, i, err)
		}
	}

	for i, story := range req.Stories {
		if err := validateStory(story); err != nil {
			return fmt.Errorf("%w: stories[%d]", err, i)
		}
	}

	return nil
}

// validateStory пожелание должно ссылаться на шаблон или содержать текст
func validateStory(story StoryRequest) error {
	hasTemplate := story.TemplateID != nil && strings.TrimSpace(*story.TemplateID) != ""
	hasMessage := story.Message != nil && strings.TrimSpace(*story.Message) != ""

	if !hasTemplate && !hasMessage {
		return fmt.Errorf("%w: templateId or message is required", ErrInvalidStory)
	}
	if story.Message != nil && len([]rune(*story.Message)) > domain.MaxStoryMessageLength {
		return fmt.Errorf("%w: message is longer than %d characters", ErrInvalidStory, domain.MaxStoryMessageLength)
	}
	return nil
}

// validateInterval проверяет один интервал по правилам сетки
func validateInterval(iv RequestedInterval, now time.Time, settings domain.BookingSettings) error {
	if domain.IsDateInPast(iv.Date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, iv.Date.Format(domain.DateFormat))
	}

	step := settings.StepTimeMinutes
	window := domain.TimeWindow{Start: iv.Start, End: iv.End}
	duration := window.DurationMinutes()

	switch {
	case !iv.End.IsAfter(iv.Start):
		return fmt.Errorf("%w: end %s is not after start %s", ErrInvalidInterval, iv.End, iv.Start)
	case duration%step != 0:
		return fmt.Errorf("%w: duration %d is not a multiple of %d", ErrInvalidInterval, duration, step)
	case iv.Start.Minute()%step != 0:
		return fmt.Errorf("%w: start %s is not aligned to %d minutes", ErrInvalidInterval, iv.Start, step)
	case duration != step:
		return fmt.Errorf("%w: duration must be exactly %d minutes", ErrInvalidInterval, step)
	}

	if domain.IsSameDay(iv.Date, now) {
		earliest := now.Add(settings.BookingNotice())
		if domain.At(iv.Date, iv.Start, now.Location()).Before(earliest) {
			return fmt.Errorf("%w: start %s must be at least %d minutes from now",
				ErrInvalidInterval, iv.Start, settings.BookingNoticeMinutes)
		}
	}

	return nil
}

// dedupIntervals убирает повторы в пределах заказа.
// Начала и концы всех интервалов попадают в одно множество времен без учета даты:
// интервал отбрасывается, если его начало уже встречалось, иначе если уже встречался его конец.
// Конец отброшенного по началу интервала не запоминается.
func dedupIntervals(intervals []RequestedInterval) []RequestedInterval {
	seen := make(map[types.TimeString]struct{}, 2*len(intervals))
	result := make([]RequestedInterval, 0, len(intervals))

	for _, iv := range intervals {
		if _, ok := seen[iv.Start]; ok {
			continue
		}
		seen[iv.Start] = struct{}{}

		if _, ok := seen[iv.End]; ok {
			continue
		}
		seen[iv.End] = struct{}{}

		result = append(result, iv)
	}

	return result
}
