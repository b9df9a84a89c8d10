package geodata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
)

const testDistricts = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"district_name": "Patna"}, "geometry": {"type": "Point", "coordinates": [85.1, 25.6]}},
    {"type": "Feature", "properties": {"district_name": "Gaya"}, "geometry": {"type": "Point", "coordinates": [85.0, 24.8]}}
  ]
}`

const testBlocks = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Patna Sadar"}, "geometry": {"type": "Point", "coordinates": [85.1, 25.6]}},
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Danapur"}, "geometry": {"type": "Point", "coordinates": [85.0, 25.6]}},
    {"type": "Feature", "properties": {"district_name": "Gaya", "mandal_name": "Gaya Town"}, "geometry": {"type": "Point", "coordinates": [85.0, 24.8]}}
  ]
}`

const testVillages = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"mandal_name": "Patna Sadar", "village_name": "Kurji"}, "geometry": {"type": "Point", "coordinates": [85.1, 25.62]}},
    {"type": "Feature", "properties": {"mandal_name": "Danapur", "village_name": "Shahpur"}, "geometry": {"type": "Point", "coordinates": [85.0, 25.61]}}
  ]
}`

const testSkillsCSV = `district_name,mandal_name,it_jobs,non_it_jobs,test_results
Patna,Patna Sadar,120,340,80
Gaya,Gaya Town,45,210,30
`

func writeTestDataset(t *testing.T) *config.GeodataConfig {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"districts.geojson": testDistricts,
		"blocks.geojson":    testBlocks,
		"villages.geojson":  testVillages,
		"skills.csv":        testSkillsCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s failed: %v", name, err)
		}
	}
	return &config.GeodataConfig{
		DistrictsFile: filepath.Join(dir, "districts.geojson"),
		BlocksFile:    filepath.Join(dir, "blocks.geojson"),
		VillagesFile:  filepath.Join(dir, "villages.geojson"),
		SkillsCSV:     filepath.Join(dir, "skills.csv"),
	}
}

func TestLoadAndLookups(t *testing.T) {
	dataset, err := Load(writeTestDataset(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := len(dataset.Districts().Features); got != 2 {
		t.Fatalf("expected 2 district features, got %d", got)
	}

	blocks := dataset.BlocksByDistrict("Patna")
	if got := len(blocks.Features); got != 2 {
		t.Fatalf("expected 2 Patna blocks, got %d", got)
	}
	if got := len(dataset.BlocksByDistrict("Nowhere").Features); got != 0 {
		t.Fatalf("expected no blocks for unknown district, got %d", got)
	}

	villages := dataset.VillagesByMandal("Patna Sadar")
	if got := len(villages.Features); got != 1 {
		t.Fatalf("expected 1 village, got %d", got)
	}
}

func TestSkillsLookup(t *testing.T) {
	dataset, err := Load(writeTestDataset(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	row := dataset.SkillsByDistrict("Patna")
	if row == nil {
		t.Fatal("expected skills row for Patna")
	}
	values := row.Values()
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	if values[0] != 120 || values[1] != 340 || values[2] != 80 {
		t.Fatalf("unexpected values: %v", values)
	}

	if dataset.SkillsByDistrict("Nowhere") != nil {
		t.Fatal("expected nil for unknown district")
	}
	if dataset.SkillsByMandal("Gaya Town") == nil {
		t.Fatal("expected skills row for Gaya Town")
	}
}

func TestLoadRejectsMissingColumn(t *testing.T) {
	cfg := writeTestDataset(t)
	if err := os.WriteFile(cfg.SkillsCSV, []byte("district_name,mandal_name,it_jobs\nPatna,Sadar,1\n"), 0o644); err != nil {
		t.Fatalf("rewrite csv failed: %v", err)
	}

	if _, err := Load(cfg); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	cfg := writeTestDataset(t)
	cfg.DistrictsFile = filepath.Join(t.TempDir(), "missing.geojson")

	if _, err := Load(cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}
