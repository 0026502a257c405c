package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/app/models"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"01/02/2023", "1/2/2023", "01/2/2023"} {
		d, err := models.ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Time(d), in)
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{"2023-01-02", "13/01/2023", "02/30/2023", "1/2/23", ""} {
		_, err := models.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestFormatDate(t *testing.T) {
	d, err := models.ParseDate("3/7/2024")
	require.NoError(t, err)
	assert.Equal(t, "03/07/2024", models.FormatDate(d))
}

func TestDateJSON(t *testing.T) {
	d, err := models.ParseDate("01/02/2023")
	require.NoError(t, err)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2023-01-02T00:00:00Z"`, string(b))
}
