// Package lookup loads the static reference tables used to classify
// admission records: first name -> gender code, course key -> academic
// units, and unit code -> city.
package lookup

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	GenderFile = "gender_map.json"
	CourseFile = "campus_map.json"
	CityFile   = "cidade_map.json"
)

type Config struct {
	Dir string `json:"dir"`
}

type Tables struct {
	// uppercase first name -> "M" | "F"
	Genders map[string]string
	// course key (shift marker included) -> ordered unit codes,
	// first entry is canonical
	CourseUnits map[string][]string
	// unit code -> city name
	UnitCities map[string]string
}

// Load reads the three lookup files from dir. A missing file yields an
// empty table with a warning, matching the behavior of the curation
// scripts that produce them; a malformed file is an error.
func Load(dir string) (Tables, error) {
	t := Tables{
		Genders:     map[string]string{},
		CourseUnits: map[string][]string{},
		UnitCities:  map[string]string{},
	}
	if err := loadJSON(filepath.Join(dir, GenderFile), &t.Genders); err != nil {
		return Tables{}, err
	}
	if err := loadJSON(filepath.Join(dir, CourseFile), &t.CourseUnits); err != nil {
		return Tables{}, err
	}
	if err := loadJSON(filepath.Join(dir, CityFile), &t.UnitCities); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func loadJSON(path string, target any) error {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("lookup table missing, resolving nothing", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(contents, target)
}
