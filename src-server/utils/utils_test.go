package utils_test

import (
	"testing"
	"time"
	"towcal/src-server/utils"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestConfigDefaults(t *testing.T) {
	config, err := utils.NewConfigFromLookup(lookupFrom(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, "8080", config.GetPort())
	assert.Equal(t, "sqlite.db", config.GetDatabasePath())
	assert.Equal(t, "towcal", config.GetCalendarName())
	assert.Equal(t, time.Local, config.GetLocation())
	assert.Equal(t, 10*time.Second, config.GetMetricCollectionInterval())
}

func TestConfigFromEnv(t *testing.T) {
	config, err := utils.NewConfigFromLookup(lookupFrom(map[string]string{
		"PORT":                       "9000",
		"DATABASE_PATH":              "/tmp/cal/../cal.db",
		"CALENDAR_NAME":              "team",
		"TIMEZONE":                   "UTC",
		"METRIC_COLLECTION_INTERVAL": "1m",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", config.GetPort())
	assert.Equal(t, "/tmp/cal.db", config.GetDatabasePath())
	assert.Equal(t, "team", config.GetCalendarName())
	assert.Equal(t, time.UTC, config.GetLocation())
	assert.Equal(t, time.Minute, config.GetMetricCollectionInterval())
}

func TestConfigInvalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"timezone":          {"TIMEZONE": "Mars/Olympus"},
		"interval":          {"METRIC_COLLECTION_INTERVAL": "often"},
		"negative interval": {"METRIC_COLLECTION_INTERVAL": "-1s"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := utils.NewConfigFromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	w := utils.NewWhen()
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)

	dt, err := utils.ParseDateTime("2024-01-10T09:30:00", w, now)
	require.NoError(t, err)
	assert.Equal(t, civil.DateTime{Date: civil.Date{Year: 2024, Month: 1, Day: 10}, Time: civil.Time{Hour: 9, Minute: 30}}, dt)

	dt, err = utils.ParseDateTime("2024-02-01", w, now)
	require.NoError(t, err)
	assert.Equal(t, civil.DateTime{Date: civil.Date{Year: 2024, Month: 2, Day: 1}}, dt)

	d, err := utils.ParseDate("tomorrow", w, now)
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 11}, d)

	_, err = utils.ParseDateTime("   ", w, now)
	assert.Error(t, err)
	_, err = utils.ParseDateTime("qwerty", w, now)
	assert.Error(t, err)
}

func TestCleanupString(t *testing.T) {
	assert.Equal(t, "Weekly Sync", utils.CleanupString("  weekly sync. "))
	assert.Equal(t, "Meet With CTO", utils.CleanupString("meet with CTO"))
}
