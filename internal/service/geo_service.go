package service

import (
	"github.com/yuvasaathi/yuvasaathi-api/internal/constants"
	"github.com/yuvasaathi/yuvasaathi-api/internal/geodata"

	"github.com/paulmach/orb/geojson"
)

// ChartData is a label/value pair set for the dashboard charts.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// DistrictData bundles a district's skills summary with its blocks.
type DistrictData struct {
	PieChartData ChartData                  `json:"pie_chart_data"`
	Blocks       *geojson.FeatureCollection `json:"blocks"`
}

// MandalData bundles a mandal's skills summary with its villages.
type MandalData struct {
	BarGraphData ChartData                  `json:"bar_graph_data"`
	Villages     *geojson.FeatureCollection `json:"villages"`
}

// GeoService serves the read-only map dashboard. A nil dataset (failed
// load at startup) answers every call with ErrDataUnavailable.
type GeoService struct {
	dataset *geodata.Dataset
}

// NewGeoService creates the geo service.
func NewGeoService(dataset *geodata.Dataset) *GeoService {
	return &GeoService{dataset: dataset}
}

// StateMap returns the whole-state district layer.
func (s *GeoService) StateMap() (*geojson.FeatureCollection, error) {
	if s.dataset == nil {
		return nil, ErrDataUnavailable
	}
	districts := s.dataset.Districts()
	if districts == nil || len(districts.Features) == 0 {
		return nil, ErrDataUnavailable
	}
	return districts, nil
}

// DistrictData returns the skills summary and block layer for an
// exact-match district name.
func (s *GeoService) DistrictData(name string) (*DistrictData, error) {
	if s.dataset == nil {
		return nil, ErrDataUnavailable
	}
	row := s.dataset.SkillsByDistrict(name)
	if row == nil {
		return nil, ErrNotFound
	}
	blocks := s.dataset.BlocksByDistrict(name)
	if len(blocks.Features) == 0 {
		return nil, ErrNotFound
	}
	return &DistrictData{
		PieChartData: ChartData{
			Labels: constants.SkillsChartLabels,
			Values: row.Values(),
		},
		Blocks: blocks,
	}, nil
}

// MandalData returns the skills summary and village layer for an
// exact-match mandal name.
func (s *GeoService) MandalData(name string) (*MandalData, error) {
	if s.dataset == nil {
		return nil, ErrDataUnavailable
	}
	row := s.dataset.SkillsByMandal(name)
	if row == nil {
		return nil, ErrNotFound
	}
	villages := s.dataset.VillagesByMandal(name)
	if len(villages.Features) == 0 {
		return nil, ErrNotFound
	}
	return &MandalData{
		BarGraphData: ChartData{
			Labels: constants.SkillsChartLabels,
			Values: row.Values(),
		},
		Villages: villages,
	}, nil
}
