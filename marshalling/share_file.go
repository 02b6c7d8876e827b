package marshalling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"thresholdsecret/secretsharing"
)

// ErrMalformedShareFile is returned when a share file does not follow the
// expected layout
var ErrMalformedShareFile = xerrors.New("malformed share file")

// keysEntry is the name of the entry declaring n and k
const keysEntry = "keys"

// ShareFile is the content of a share file: the declared threshold and the
// shares, sorted by x.
//
// On disk it is a mapping where the "keys" entry holds n and k, and every
// other entry is keyed by the share x and holds its base and value:
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"}
//	}
type ShareFile struct {
	Spec   secretsharing.ThresholdSpec
	Shares []secretsharing.Share
}

// rawFile is the generic form both JSON and YAML decode into
type rawFile map[string]map[string]interface{}

// toInt accepts the different representations a number can take once
// decoded: a JSON number, a YAML integer or a string
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}

// isDigits reports whether s is a non-empty run of decimal digits
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// toValue accepts a string, or a JSON number made only of digits. Other
// number literals (exponents, fractions, signs) would not keep the digits
// the share was written with, so they are rejected.
func toValue(v interface{}) (string, error) {
	switch n := v.(type) {
	case string:
		return n, nil
	case json.Number:
		if !isDigits(n.String()) {
			return "", fmt.Errorf("number %s must be written as a string", n)
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("unexpected type %T", v)
}

func (raw rawFile) toShareFile() (ShareFile, error) {
	keys, ok := raw[keysEntry]
	if !ok {
		return ShareFile{}, xerrors.Errorf("missing %q entry: %w", keysEntry, ErrMalformedShareFile)
	}

	n, err := toInt(keys["n"])
	if err != nil {
		return ShareFile{}, xerrors.Errorf("invalid n: %v: %w", err, ErrMalformedShareFile)
	}
	k, err := toInt(keys["k"])
	if err != nil {
		return ShareFile{}, xerrors.Errorf("invalid k: %v: %w", err, ErrMalformedShareFile)
	}

	shares := make([]secretsharing.Share, 0, len(raw)-1)
	for key, entry := range raw {
		if key == keysEntry {
			continue
		}

		x, ok := new(big.Int).SetString(key, 10)
		if !ok {
			return ShareFile{}, xerrors.Errorf("invalid share index %q: %w", key, ErrMalformedShareFile)
		}
		base, err := toInt(entry["base"])
		if err != nil {
			return ShareFile{}, xerrors.Errorf("invalid base for share %q: %v: %w", key, err, ErrMalformedShareFile)
		}
		value, err := toValue(entry["value"])
		if err != nil {
			return ShareFile{}, xerrors.Errorf("invalid value for share %q: %v: %w", key, err, ErrMalformedShareFile)
		}

		shares = append(shares, secretsharing.Share{X: x, Base: base, Value: value})
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].X.Cmp(shares[j].X) < 0
	})

	return ShareFile{
		Spec:   secretsharing.ThresholdSpec{N: n, K: k},
		Shares: shares,
	}, nil
}

func (f ShareFile) toRaw() rawFile {
	raw := make(rawFile, len(f.Shares)+1)
	raw[keysEntry] = map[string]interface{}{
		"n": f.Spec.N,
		"k": f.Spec.K,
	}
	for _, s := range f.Shares {
		raw[s.X.String()] = map[string]interface{}{
			"base":  strconv.Itoa(s.Base),
			"value": s.Value,
		}
	}
	return raw
}

// ParseJSON reads a share file in JSON
func ParseJSON(data []byte) (ShareFile, error) {
	raw := rawFile{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(&raw)
	if err != nil {
		return ShareFile{}, xerrors.Errorf("failed to parse JSON: %v: %w", err, ErrMalformedShareFile)
	}
	return raw.toShareFile()
}

// ParseYAML reads a share file in YAML. Share values are taken as written,
// so an unquoted 0x1f stays "0x1f" instead of being read as a YAML integer.
func ParseYAML(data []byte) (ShareFile, error) {
	nodes := map[string]map[string]yaml.Node{}
	err := yaml.Unmarshal(data, &nodes)
	if err != nil {
		return ShareFile{}, xerrors.Errorf("failed to parse YAML: %v: %w", err, ErrMalformedShareFile)
	}

	raw := make(rawFile, len(nodes))
	for key, entry := range nodes {
		fields := make(map[string]interface{}, len(entry))
		for name, node := range entry {
			if key != keysEntry && name == "value" && node.Kind == yaml.ScalarNode {
				fields[name] = node.Value
				continue
			}

			var v interface{}
			err = node.Decode(&v)
			if err != nil {
				return ShareFile{}, xerrors.Errorf("invalid %s of %q: %v: %w", name, key, err, ErrMalformedShareFile)
			}
			fields[name] = v
		}
		raw[key] = fields
	}
	return raw.toShareFile()
}

// EncodeJSON writes a share file in JSON
func EncodeJSON(f ShareFile) ([]byte, error) {
	return json.MarshalIndent(f.toRaw(), "", "  ")
}

// EncodeYAML writes a share file in YAML
func EncodeYAML(f ShareFile) ([]byte, error) {
	return yaml.Marshal(f.toRaw())
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ReadShareFile reads the share file at path. Files ending in .yaml or .yml
// are read as YAML, anything else as JSON.
func ReadShareFile(path string) (ShareFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShareFile{}, xerrors.Errorf("failed to read file %s: %w", path, err)
	}

	if isYAML(path) {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// WriteShareFile writes f at path, in YAML or JSON depending on the
// extension
func WriteShareFile(path string, f ShareFile) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = EncodeYAML(f)
	} else {
		data, err = EncodeJSON(f)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
