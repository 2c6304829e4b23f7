// Package clientid генерирует видимые номера клиентов.
//
// Номер — строка из цифр фиксированной длины, источник случайности
// криптографический. Уникальность номера гарантирует не генератор,
// а уникальный индекс в базе: вставка повторяется при конфликте.
package clientid

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length — длина номера клиента в цифрах.
const Length = 8

// New возвращает случайный номер клиента из Length цифр.
// Ведущие нули допустимы, поэтому номер хранится строкой.
func New() (string, error) {
	const op = "clientid.New"
	max := big.NewInt(1)
	for range Length {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%0*d", Length, n), nil
}
