package interpreter

import "time"

// monthTable maps Russian month names, nominative and genitive, to months.
func monthTable() map[string]time.Month {
	return map[string]time.Month{
		"январь":   time.January,
		"января":   time.January,
		"февраль":  time.February,
		"февраля":  time.February,
		"март":     time.March,
		"марта":    time.March,
		"апрель":   time.April,
		"апреля":   time.April,
		"май":      time.May,
		"мая":      time.May,
		"июнь":     time.June,
		"июня":     time.June,
		"июль":     time.July,
		"июля":     time.July,
		"август":   time.August,
		"августа":  time.August,
		"сентябрь": time.September,
		"сентября": time.September,
		"октябрь":  time.October,
		"октября":  time.October,
		"ноябрь":   time.November,
		"ноября":   time.November,
		"декабрь":  time.December,
		"декабря":  time.December,
	}
}

// cardinalTable maps the Russian cardinal words one through ten, accepted
// wherever a numeric reminder key is expected.
func cardinalTable() map[string]int {
	return map[string]int{
		"один":   1,
		"два":    2,
		"три":    3,
		"четыре": 4,
		"пять":   5,
		"шесть":  6,
		"семь":   7,
		"восемь": 8,
		"девять": 9,
		"десять": 10,
	}
}
