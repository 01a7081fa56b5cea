package types

import "fmt"

// Pence денежная сумма в минорных единицах (пенсы).
// Все цены хранятся и считаются целыми пенсами, чтобы разложение НДС
// не давало расхождения в копейки между отображаемыми компонентами.
type Pence int64

// Pounds возвращает сумму в фунтах (для отображения и логов).
func (p Pence) Pounds() float64 {
	return float64(p) / 100
}

// String форматирует сумму как "£12.34".
func (p Pence) String() string {
	v := int64(p)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s£%d.%02d", sign, v/100, v%100)
}
