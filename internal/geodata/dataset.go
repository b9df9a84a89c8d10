package geodata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"

	"github.com/paulmach/orb/geojson"
)

// Property keys on the block and village features.
const (
	PropDistrictName = "district_name"
	PropMandalName   = "mandal_name"
)

// SkillsRow is one line of the skills statistics CSV.
type SkillsRow struct {
	DistrictName string
	MandalName   string
	ITJobs       int
	NonITJobs    int
	TestResults  int
}

// Values returns the three chart values in label order.
func (r SkillsRow) Values() []int {
	return []int{r.ITJobs, r.NonITJobs, r.TestResults}
}

// Dataset holds the state geometry and skills statistics, loaded once at
// startup and read-only afterwards.
type Dataset struct {
	districts *geojson.FeatureCollection
	blocks    *geojson.FeatureCollection
	villages  *geojson.FeatureCollection
	skills    []SkillsRow
}

// Load reads the three GeoJSON layers and the skills CSV.
func Load(cfg *config.GeodataConfig) (*Dataset, error) {
	if cfg == nil {
		return nil, fmt.Errorf("geodata config missing")
	}

	districts, err := loadFeatureCollection(cfg.DistrictsFile)
	if err != nil {
		return nil, fmt.Errorf("load districts: %w", err)
	}
	blocks, err := loadFeatureCollection(cfg.BlocksFile)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	villages, err := loadFeatureCollection(cfg.VillagesFile)
	if err != nil {
		return nil, fmt.Errorf("load villages: %w", err)
	}
	skills, err := loadSkillsCSV(cfg.SkillsCSV)
	if err != nil {
		return nil, fmt.Errorf("load skills csv: %w", err)
	}

	return &Dataset{
		districts: districts,
		blocks:    blocks,
		villages:  villages,
		skills:    skills,
	}, nil
}

// Districts returns the whole-state district layer.
func (d *Dataset) Districts() *geojson.FeatureCollection {
	return d.districts
}

// BlocksByDistrict returns block features whose district_name property
// matches exactly.
func (d *Dataset) BlocksByDistrict(name string) *geojson.FeatureCollection {
	return filterByProperty(d.blocks, PropDistrictName, name)
}

// VillagesByMandal returns village features whose mandal_name property
// matches exactly.
func (d *Dataset) VillagesByMandal(name string) *geojson.FeatureCollection {
	return filterByProperty(d.villages, PropMandalName, name)
}

// SkillsByDistrict returns the district's statistics row, nil when
// absent.
func (d *Dataset) SkillsByDistrict(name string) *SkillsRow {
	for i := range d.skills {
		if d.skills[i].DistrictName == name {
			return &d.skills[i]
		}
	}
	return nil
}

// SkillsByMandal returns the mandal's statistics row, nil when absent.
func (d *Dataset) SkillsByMandal(name string) *SkillsRow {
	for i := range d.skills {
		if d.skills[i].MandalName == name {
			return &d.skills[i]
		}
	}
	return nil
}

func loadFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(raw)
}

func filterByProperty(fc *geojson.FeatureCollection, key, value string) *geojson.FeatureCollection {
	filtered := geojson.NewFeatureCollection()
	if fc == nil {
		return filtered
	}
	for _, feature := range fc.Features {
		if prop, ok := feature.Properties[key].(string); ok && prop == value {
			filtered.Append(feature)
		}
	}
	return filtered
}

func loadSkillsCSV(path string) ([]SkillsRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("skills csv empty")
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"district_name", "mandal_name", "it_jobs", "non_it_jobs", "test_results"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("skills csv missing column %s", required)
		}
	}

	rows := make([]SkillsRow, 0, len(records)-1)
	for lineNo, record := range records[1:] {
		itJobs, err := parseCount(record[columns["it_jobs"]])
		if err != nil {
			return nil, fmt.Errorf("skills csv line %d: %w", lineNo+2, err)
		}
		nonITJobs, err := parseCount(record[columns["non_it_jobs"]])
		if err != nil {
			return nil, fmt.Errorf("skills csv line %d: %w", lineNo+2, err)
		}
		testResults, err := parseCount(record[columns["test_results"]])
		if err != nil {
			return nil, fmt.Errorf("skills csv line %d: %w", lineNo+2, err)
		}
		rows = append(rows, SkillsRow{
			DistrictName: strings.TrimSpace(record[columns["district_name"]]),
			MandalName:   strings.TrimSpace(record[columns["mandal_name"]]),
			ITJobs:       itJobs,
			NonITJobs:    nonITJobs,
			TestResults:  testResults,
		})
	}
	return rows, nil
}

func parseCount(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("bad count %q", raw)
	}
	return value, nil
}
