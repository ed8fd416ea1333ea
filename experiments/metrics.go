package experiments

import "time"

// MoveRow is one searched move as persisted to parquet.
type MoveRow struct {
	Game       int32   `parquet:"game"`
	Step       int32   `parquet:"step"`
	Player     string  `parquet:"player,dict"`
	Label      string  `parquet:"label,dict"`
	DurationMs int64   `parquet:"duration_ms"`
	Descents   int64   `parquet:"descents"`
	Rollouts   int64   `parquet:"rollouts"`
	Chunks     int64   `parquet:"chunks"`
	Sims       float64 `parquet:"sims"`
	TreeReused bool    `parquet:"tree_reused"`
}

// Setup describes one experiment run.
type Setup struct {
	Configs   []Config      `json:"configs"`
	NumGames  int           `json:"numGames"` // per config
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
}

// Config is one engine parameterization under test.
type Config struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	MaxSim   float64       `json:"maxsim"`
	Roots    int           `json:"roots"` // >1 enables multi-root search
}
