package lightgbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned for model text that cannot be read.
var ErrMalformed = errors.New("lightgbm: malformed model")

const maxLineSize = 64 << 20

// Parse reads a LightGBM text model.
func Parse(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	header := make(map[string]string)
	flags := make(map[string]bool)
	var blocks []map[string]string
	var current map[string]string
	sawTrees := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "end of trees" {
			sawTrees = true
			break
		}
		if strings.HasPrefix(line, "Tree=") {
			current = make(map[string]string)
			blocks = append(blocks, current)
			continue
		}

		key, value, hasValue := strings.Cut(line, "=")
		switch {
		case current != nil:
			current[key] = value
		case hasValue:
			header[key] = value
		default:
			flags[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(header) == 0 && len(blocks) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrMalformed)
	}
	if !sawTrees {
		return nil, fmt.Errorf("%w: truncated, missing end of trees", ErrMalformed)
	}

	m, err := newModel(header, flags)
	if err != nil {
		return nil, err
	}

	m.trees = make([]tree, len(blocks))
	for i, block := range blocks {
		t, err := parseTree(block)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrMalformed, i, err)
		}
		if err := t.validate(m.numFeatures); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrMalformed, i, err)
		}
		m.trees[i] = t
	}
	m.countSplits()
	return m, nil
}

func newModel(header map[string]string, flags map[string]bool) (*Model, error) {
	if n, ok := header["num_class"]; ok && n != "1" {
		return nil, fmt.Errorf("%w: num_class=%s, only single-output models are supported", ErrMalformed, n)
	}
	if n, ok := header["num_tree_per_iteration"]; ok && n != "1" {
		return nil, fmt.Errorf("%w: num_tree_per_iteration=%s", ErrMalformed, n)
	}

	maxIdx, err := strconv.Atoi(header["max_feature_idx"])
	if err != nil || maxIdx < 0 {
		return nil, fmt.Errorf("%w: bad max_feature_idx %q", ErrMalformed, header["max_feature_idx"])
	}

	m := &Model{
		version:       header["version"],
		numFeatures:   maxIdx + 1,
		averageOutput: flags["average_output"],
	}

	if names := strings.Fields(header["feature_names"]); len(names) > 0 {
		if len(names) != m.numFeatures {
			return nil, fmt.Errorf("%w: %d feature names for %d features", ErrMalformed, len(names), m.numFeatures)
		}
		m.featureNames = names
	}

	objective := strings.Fields(header["objective"])
	params := make(map[string]string)
	if len(objective) > 0 {
		m.objective = objective[0]
		for _, p := range objective[1:] {
			k, v, _ := strings.Cut(p, ":")
			params[k] = v
		}
	}
	m.transform, err = transformFor(m.objective, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return m, nil
}

func parseTree(block map[string]string) (tree, error) {
	var t tree

	numLeaves, err := strconv.Atoi(block["num_leaves"])
	if err != nil || numLeaves < 1 {
		return t, fmt.Errorf("bad num_leaves %q", block["num_leaves"])
	}
	if block["is_linear"] == "1" {
		return t, errors.New("linear trees are not supported")
	}

	if t.leafValue, err = floats(block, "leaf_value"); err != nil {
		return t, err
	}
	if len(t.leafValue) != numLeaves {
		return t, fmt.Errorf("leaf_value has %d entries, want %d", len(t.leafValue), numLeaves)
	}
	if numLeaves == 1 {
		return t, nil
	}

	if t.splitFeature, err = ints(block, "split_feature"); err != nil {
		return t, err
	}
	if t.threshold, err = floats(block, "threshold"); err != nil {
		return t, err
	}
	if t.leftChild, err = ints(block, "left_child"); err != nil {
		return t, err
	}
	if t.rightChild, err = ints(block, "right_child"); err != nil {
		return t, err
	}

	decision, err := ints(block, "decision_type")
	if err != nil {
		return t, err
	}
	t.decisionType = make([]uint8, len(decision))
	for i, d := range decision {
		if d < 0 || d > 15 {
			return t, fmt.Errorf("bad decision_type %d", d)
		}
		t.decisionType[i] = uint8(d)
	}

	if numCat, _ := strconv.Atoi(block["num_cat"]); numCat > 0 {
		if t.catBoundaries, err = ints(block, "cat_boundaries"); err != nil {
			return t, err
		}
		raw := strings.Fields(block["cat_threshold"])
		t.catThreshold = make([]uint32, len(raw))
		for i, s := range raw {
			v, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return t, fmt.Errorf("cat_threshold: %v", err)
			}
			t.catThreshold[i] = uint32(v)
		}
	}

	return t, nil
}

func floats(block map[string]string, key string) ([]float64, error) {
	raw, ok := block[key]
	if !ok {
		return nil, fmt.Errorf("missing %s", key)
	}
	fields := strings.Fields(raw)
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", key, err)
		}
		out[i] = v
	}
	return out, nil
}

func ints(block map[string]string, key string) ([]int, error) {
	raw, ok := block[key]
	if !ok {
		return nil, fmt.Errorf("missing %s", key)
	}
	fields := strings.Fields(raw)
	out := make([]int, len(fields))
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", key, err)
		}
		out[i] = v
	}
	return out, nil
}
