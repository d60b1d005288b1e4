package availability

import "time"

// OffsetDelta возвращает разницу UTC-смещений двух зон в минутах на момент at:
// положительное значение — зона ментора впереди зоны пользователя.
// Используется только для подписи «ментор на N часов впереди» и никогда
// не влияет на сопоставление слотов с датами.
//
// Неизвестная или пустая зона трактуется как нулевое смещение:
// это необязательное украшение, падать из-за него нельзя.
func OffsetDelta(mentorTZ, viewerTZ string, at time.Time) int {
	return zoneOffsetMinutes(mentorTZ, at) - zoneOffsetMinutes(viewerTZ, at)
}

// zoneOffsetMinutes смещение зоны от UTC в минутах на момент at
func zoneOffsetMinutes(name string, at time.Time) int {
	if name == "" {
		return 0
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return 0
	}

	_, offsetSeconds := at.In(loc).Zone()
	return offsetSeconds / 60
}
