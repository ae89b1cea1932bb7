package ingest

import "calouros-backend/lib/callstore"

// NoQuota is the sentinel bucket for records without a quota marker.
const NoQuota = "sem_cota"

type Summary struct {
	Total    int            `json:"total"`
	ByGender map[string]int `json:"por_genero"`
	ByCity   map[string]int `json:"por_cidade"`
	ByQuota  map[string]int `json:"por_cota"`
}

// Summarize computes the count distributions of a classified batch.
// Unresolved cities fall into the indeterminate bucket, missing quota
// markers into the sem_cota bucket.
func Summarize(records []Record) Summary {
	s := Summary{
		Total:    len(records),
		ByGender: map[string]int{},
		ByCity:   map[string]int{},
		ByQuota:  map[string]int{},
	}
	for _, r := range records {
		gender := r.Gender
		if gender == "" {
			gender = GenderUnknown
		}
		s.ByGender[gender]++

		city := r.City
		if city == "" {
			city = callstore.Indeterminate
		}
		s.ByCity[city]++

		quota := r.Quota
		if quota == "" {
			quota = NoQuota
		}
		s.ByQuota[quota]++
	}
	return s
}
