package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoder_Encode(t *testing.T) {
	enc, err := NewLabelEncoder("Crop", []string{"Groundnut", "Soybean", "Sunflower"})
	require.NoError(t, err)

	assert.Equal(t, "Crop", enc.Column())
	assert.Equal(t, 0, enc.Encode("Groundnut"))
	assert.Equal(t, 1, enc.Encode("Soybean"))
	assert.Equal(t, 2, enc.Encode("Sunflower"))
	assert.Equal(t, UnseenCode, enc.Encode("Mustard"))
	assert.Equal(t, UnseenCode, enc.Encode(""))
}

// TestLabelEncoder_Deterministic tests that every known label encodes the same way on every call
func TestLabelEncoder_Deterministic(t *testing.T) {
	enc, err := NewLabelEncoder("Season", []string{"Kharif", "Rabi", "Summer"})
	require.NoError(t, err)

	for _, label := range enc.Classes() {
		first := enc.Encode(label)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, enc.Encode(label))
		}
		assert.True(t, enc.Known(label))
	}
	assert.False(t, enc.Known("Winter"))
}

func TestNewLabelEncoder_Invalid(t *testing.T) {
	_, err := NewLabelEncoder("", []string{"a"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewLabelEncoder("Crop", []string{"a", "b", "a"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestLabelEncoder_ClassesIsCopy(t *testing.T) {
	enc, err := NewLabelEncoder("Crop", []string{"a", "b"})
	require.NoError(t, err)

	classes := enc.Classes()
	classes[0] = "z"

	assert.Equal(t, []string{"a", "b"}, enc.Classes())
	assert.Equal(t, 0, enc.Encode("a"))
}

func TestEncoderTable(t *testing.T) {
	crop, err := NewLabelEncoder("Crop", []string{"Soybean"})
	require.NoError(t, err)
	season, err := NewLabelEncoder("Season", []string{"Kharif"})
	require.NoError(t, err)

	table := EncoderTable{"Season": season, "Crop": crop}

	assert.Equal(t, []string{"Crop", "Season"}, table.Columns())

	got, err := table.Lookup("Crop")
	require.NoError(t, err)
	assert.Same(t, crop, got)

	_, err = table.Lookup("District")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownColumn))
	assert.Contains(t, err.Error(), "District")
}

func TestEncodedFeatureName(t *testing.T) {
	assert.Equal(t, "Soil_Type_Encoded", EncodedFeatureName("Soil_Type"))
	assert.Equal(t, "Crop_Encoded", CategoricalField{Column: "Crop"}.FeatureName())
}
