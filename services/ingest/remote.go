package ingest

import "calouros-backend/lib/mirror"

// RemoteRows converts classified records into mirror rows, dropping
// those the remote table cannot accept: a row needs an enrollment id,
// a name, a course and a resolved city. The second return is how many
// records were dropped. Duplicate enrollments keep the last occurrence
// in first-seen order, matching the on_conflict semantics of the
// upsert itself.
func RemoteRows(records []Record) ([]mirror.Row, int) {
	rows := make([]mirror.Row, 0, len(records))
	index := map[string]int{}
	skipped := 0

	for _, rec := range records {
		course := rec.CleanCourse
		if course == "" {
			course = rec.Course
		}
		if rec.Enrollment == "" || rec.Name == "" || course == "" || rec.City == "" {
			skipped++
			continue
		}

		row := mirror.Row{
			Inscricao:  rec.Enrollment,
			Name:       rec.Name,
			Course:     course,
			University: rec.Institution,
			Cidade:     rec.City,
			Unidade:    rec.Unit,
			Chamada:    rec.Call,
			Genero:     remoteGender(rec.Gender),
			Cota:       rec.Quota,
			Remanejado: rec.Reassigned,
		}
		if at, ok := index[rec.Enrollment]; ok {
			rows[at] = row
			continue
		}
		index[rec.Enrollment] = len(rows)
		rows = append(rows, row)
	}
	return rows, skipped
}

func remoteGender(g string) string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "other"
	}
}
