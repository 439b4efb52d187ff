package constants

import "os"

const (
	DefaultSmoothingWindow  = 9   // frames
	DefaultMinChordDuration = 0.5 // seconds

	DefaultGrade = 1
	MaxGrade     = 8 // ABRSM scale

	DefaultTempo = 80 // BPM, a comfortable practice tempo
	MinTempo     = 20
	MaxTempo     = 300

	DefaultVelocity = 80 // right hand note on velocity
	BassVelocity    = 68 // slightly softer left hand bass notes
)

// GetCacheEndpoint returns the DynamoDB endpoint for the video metadata
// cache. An empty value means the cache is disabled.
func GetCacheEndpoint() string {
	return os.Getenv("TUBECHORD_CACHE_ENDPOINT")
}

func GetCacheTable() string {
	table := os.Getenv("TUBECHORD_CACHE_TABLE")
	if table != "" {
		return table
	}
	return "tubechord-metadata"
}
