// Package subscription реализует чистую арифметику абонемента:
// сколько дней действия осталось и активен ли абонемент сейчас.
//
// Текущая дата всегда передаётся параметром, внутри пакета часы
// не читаются — поведение детерминировано и проверяемо.
package subscription

import "time"

// RemainingDays считает оставшиеся дни абонемента.
//
// Возвращает nil, если дата начала или длительность не заданы:
// у клиента без данных абонемента нет вычислимого статуса.
// Иначе конец действия — start + days, результат — целые сутки
// от today до конца, отрицательное значение прижимается к нулю.
// Просроченный абонемент сообщает ровно 0, никогда не минус.
func RemainingDays(start *time.Time, days *int, today time.Time) *int {
	if start == nil || days == nil {
		return nil
	}
	end := atMidnight(*start).AddDate(0, 0, *days)
	remaining := int(end.Sub(atMidnight(today)).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// IsActive сообщает, действует ли абонемент. Граница строгая:
// ровно 0 оставшихся дней — уже не активен.
func IsActive(remaining *int) bool {
	return remaining != nil && *remaining > 0
}

// atMidnight отбрасывает время суток, сравнение идёт на уровне дат.
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
