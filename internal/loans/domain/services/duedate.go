// Package services реализует доменные сервисы займов: расчет даты
// возврата и проверку правил выдачи.
package services

import (
	"time"

	"biblioteca/internal/loans/domain/entities"
)

// DueDateCalculator вычисляет максимальную дату возврата книги.
// Суббота и воскресенье не учитываются при подсчете дней займа;
// календарь праздников не используется.
type DueDateCalculator struct{}

// NewDueDateCalculator создает новый калькулятор даты возврата.
func NewDueDateCalculator() *DueDateCalculator {
	return &DueDateCalculator{}
}

// Calculate возвращает дату возврата, считая от текущего дня.
func (c *DueDateCalculator) Calculate(category entities.Category) time.Time {
	return c.CalculateFrom(category, time.Now())
}

// CalculateFrom возвращает дату возврата, считая от указанной базовой даты.
// База не входит в подсчет; цикл всегда делает хотя бы один шаг вперед,
// поэтому результат строго позже базы и никогда не попадает на выходной.
func (c *DueDateCalculator) CalculateFrom(category entities.Category, base time.Time) time.Time {
	result := base
	added := 0
	for added < category.LoanDays() {
		result = result.AddDate(0, 0, 1)
		if wd := result.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return result
}
