package availability

import "fmt"

// NormalizeClock приводит строку времени "HH:MM" или "HH:MM:SS" к виду "HH:MM".
// Секунды, если платформа их прислала, отбрасываются.
// Всё, что не является корректным временем суток, считается ошибкой —
// такие правила исключаются из выдачи ещё на этапе декодирования.
func NormalizeClock(s string) (string, error) {
	// "HH:MM:SS" -> "HH:MM"
	if len(s) == 8 && s[5] == ':' {
		s = s[:5]
	}

	if len(s) != 5 || s[2] != ':' {
		return "", fmt.Errorf("invalid clock string %q", s)
	}

	hh := digits2(s[0], s[1])
	mm := digits2(s[3], s[4])
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return "", fmt.Errorf("invalid clock string %q", s)
	}

	return s, nil
}

// digits2 собирает двузначное число из двух ASCII-цифр, -1 если не цифры
func digits2(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}
