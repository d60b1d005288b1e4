package formatting

// PluralizeSlots возвращает правильное склонение слова "слот"
func PluralizeSlots(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "слот"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "слота"
	}
	return "слотов"
}

// PluralizeMentors возвращает правильное склонение слова "ментор"
func PluralizeMentors(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "ментор"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "ментора"
	}
	return "менторов"
}
