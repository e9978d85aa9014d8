// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/invowk/globentries/pkg/types"
)

// The Parse functions accept loosely typed values as produced by decoding a
// config file (CUE, JSON, YAML) into map[string]any. They reject values of
// the wrong shape with configuration errors, before anything is globbed.

// ParsePatterns accepts a single string, a []string or a []any holding only
// strings. Pattern syntax is not checked here; Aggregator.Entries does that.
func ParsePatterns(raw any) ([]types.GlobPattern, error) {
	switch v := raw.(type) {
	case string:
		return []types.GlobPattern{types.GlobPattern(v)}, nil
	case types.GlobPattern:
		return []types.GlobPattern{v}, nil
	case []types.GlobPattern:
		return v, nil
	case []string:
		out := make([]types.GlobPattern, len(v))
		for i, s := range v {
			out[i] = types.GlobPattern(s)
		}
		return out, nil
	case []any:
		out := make([]types.GlobPattern, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrInvalidPatterns, i, item)
			}
			out[i] = types.GlobPattern(s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidPatterns, raw)
	}
}

// ParseMatchOptions decodes an options object. nil yields the zero options;
// anything that is not an object is rejected. Unknown keys are ignored.
func ParseMatchOptions(raw any) (MatchOptions, error) {
	var opts MatchOptions
	if raw == nil {
		return opts, nil
	}
	if _, ok := raw.(map[string]any); !ok {
		return opts, &InvalidMatchOptionsError{Reason: fmt.Sprintf("must be an object, got %T", raw)}
	}
	if err := decodeObject(raw, &opts); err != nil {
		return MatchOptions{}, &InvalidMatchOptionsError{Reason: "decode", Cause: err}
	}
	return opts, opts.Validate()
}

// ParsePluginOptions decodes a plugin options object. nil yields the zero
// options; anything that is not an object is rejected. Only the naming keys
// are recognized, the rest is ignored.
func ParsePluginOptions(raw any) (PluginOptions, error) {
	var opts PluginOptions
	if raw == nil {
		return opts, nil
	}
	if _, ok := raw.(map[string]any); !ok {
		return opts, &InvalidPluginOptionsError{Reason: fmt.Sprintf("must be an object, got %T", raw)}
	}
	if err := decodeObject(raw, &opts); err != nil {
		return PluginOptions{}, &InvalidPluginOptionsError{Reason: "decode", Cause: err}
	}
	if _, err := opts.namingFunc(); err != nil {
		return PluginOptions{}, err
	}
	return opts, nil
}

func decodeObject(raw, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
