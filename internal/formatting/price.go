package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice форматирует цену из копеек: "2 300,00 ₽"
func FormatPrice(minor int) string {
	return fmt.Sprintf("%s,%02d ₽", groupThousands(minor/100), minor%100)
}

// FormatPriceShort для списков: копейки только если они есть, "1 500 ₽"
func FormatPriceShort(minor int) string {
	if minor%100 == 0 {
		return groupThousands(minor/100) + " ₽"
	}
	return FormatPrice(minor)
}

// groupThousands разбивает рубли на разряды пробелами
func groupThousands(n int) string {
	digits := strconv.Itoa(n)
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
