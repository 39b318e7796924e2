package domain

// ElevationStatus - результат best-effort запроса высот
type ElevationStatus string

const (
	ElevationAvailable   ElevationStatus = "available"
	ElevationUnavailable ElevationStatus = "unavailable"
)

const (
	DifficultyFlat     = "flat"
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
	DifficultyVeryHard = "very hard"
	DifficultyUnknown  = "unknown"

	DirectionUphill   = "uphill"
	DirectionDownhill = "downhill"
	DirectionFlat     = "flat"
)

// ElevationProfile - перепад высот между началом и концом маршрута.
// При Status == ElevationUnavailable Difference равен 0, Difficulty - unknown.
type ElevationProfile struct {
	Status         ElevationStatus `json:"status"`
	StartElevation float64         `json:"startElevation"`
	EndElevation   float64         `json:"endElevation"`
	Difference     float64         `json:"difference"` // meters, end - start
	Difficulty     string          `json:"difficulty"`
	Color          string          `json:"color"`
	Direction      string          `json:"direction"`
}

// UnknownElevation - нейтральный профиль для недоступного провайдера
func UnknownElevation() ElevationProfile {
	return ElevationProfile{
		Status:     ElevationUnavailable,
		Difficulty: DifficultyUnknown,
		Color:      "#9E9E9E",
		Direction:  DirectionFlat,
	}
}
