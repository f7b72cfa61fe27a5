package constants

import "os"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetListenAddr() string {
	return getenv("FRETDEX_ADDR", ":8080")
}

// GetDynamoEndpoint is empty unless profiles are stored in DynamoDB.
func GetDynamoEndpoint() string {
	return os.Getenv("FRETDEX_DYNAMO_ENDPOINT")
}

func GetDynamoRegion() string {
	return getenv("FRETDEX_DYNAMO_REGION", "localhost")
}

func GetProfilesTable() string {
	return getenv("FRETDEX_PROFILES_TABLE", "fretdex-profiles")
}

func GetLogLevel() string {
	return getenv("FRETDEX_LOG_LEVEL", "info")
}

// how long held MIDI keys must stay unchanged before the chord is fretted
const ListenSettleMillis = 30
