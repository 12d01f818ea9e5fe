package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/yieldcast/internal/adapters/driven/model/lightgbm"
	"github.com/custodia-labs/yieldcast/internal/core/domain"
	"github.com/custodia-labs/yieldcast/internal/core/ports/driven"
	"github.com/custodia-labs/yieldcast/internal/logger"
)

// Format is the serialization of a features or encoders file.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ModelFormatLightGBM names the LightGBM text model format.
const ModelFormatLightGBM = "lightgbm"

// FormatFor picks the format from a file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func unmarshal(data []byte, format Format, v any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// DecodeFeatures reads an ordered list of feature names.
func DecodeFeatures(data []byte, format Format) (domain.FeatureSchema, error) {
	var names []string
	if err := unmarshal(data, format, &names); err != nil {
		return domain.FeatureSchema{}, fmt.Errorf("decoding feature list: %w", err)
	}
	return domain.NewFeatureSchema(names)
}

// DecodeEncoders reads an object mapping each categorical column to its
// class labels in code order. Numeric labels are kept in their text form.
func DecodeEncoders(data []byte, format Format) (domain.EncoderTable, error) {
	var raw map[string][]any
	if err := unmarshal(data, format, &raw); err != nil {
		return nil, fmt.Errorf("decoding encoders: %w", err)
	}

	classes := make(map[string][]string, len(raw))
	for col, labels := range raw {
		out := make([]string, len(labels))
		for i, label := range labels {
			switch l := label.(type) {
			case string:
				out[i] = l
			case nil:
				return nil, fmt.Errorf("%w: encoder %q has a null label at %d", domain.ErrInvalidInput, col, i)
			default:
				out[i] = fmt.Sprint(l)
			}
		}
		classes[col] = out
	}
	return NewEncoderTable(classes)
}

// NewEncoderTable builds an encoder table from column to class labels.
func NewEncoderTable(classes map[string][]string) (domain.EncoderTable, error) {
	table := make(domain.EncoderTable, len(classes))
	for col, labels := range classes {
		enc, err := domain.NewLabelEncoder(col, labels)
		if err != nil {
			return nil, err
		}
		table[col] = enc
	}
	return table, nil
}

// DecodeModel reads a model body of the given format.
func DecodeModel(format string, r io.Reader) (driven.Model, error) {
	switch format {
	case ModelFormatLightGBM, "":
		m, err := lightgbm.Parse(r)
		if err != nil {
			return nil, err
		}
		logger.Debug("LightGBM %s model, objective %s, %d trees", m.Version(), m.Objective(), m.NumTrees())
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model format %q", format)
	}
}
