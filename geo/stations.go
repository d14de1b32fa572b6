package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hafeezhmha/goodminton/types"
)

// LoadStations reads the metro station reference file ({name, lat, lng}
// records). On any failure it returns an empty index along with the
// error: callers log a warning and carry on with nearest-station
// results degraded to "unknown".
func LoadStations(path string) (*StationIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewStationIndex(nil), fmt.Errorf("reading stations file: %w", err)
	}

	var stations []types.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return NewStationIndex(nil), fmt.Errorf("parsing stations file: %w", err)
	}

	return NewStationIndex(stations), nil
}
