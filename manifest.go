package testdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tailscale/hujson"
)

// A manifest declares a whole fixture tree in one HuJSON (JSON with
// comments and trailing commas) document mapping relative paths to
// kinds:
//
//	{
//		// layout under the fixture root
//		"logs":          "dir",
//		"logs/app.log":  "empty",
//		"blob.bin":      {"zero": 4096},
//		"payload.bin":   {"random": 64},
//		"conf/app.conf": {"content": "debug = true"},
//	}
//
// Entries are applied in sorted path order, so materialization is
// deterministic regardless of document order.

// CreateAll materializes every entry of the manifest and returns the
// fixture for chaining. See [TestDir.MkAll].
func (d *TestDir) CreateAll(manifest []byte) *TestDir {
	d.helper()

	if err := d.MkAll(manifest); err != nil {
		d.fatalf("testdir: %v", err)
	}

	return d
}

// MkAll is the error-returning form of [TestDir.CreateAll]. The first
// failing entry aborts materialization, leaving earlier entries in
// place.
func (d *TestDir) MkAll(manifest []byte) error {
	entries, err := parseManifest(manifest)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := d.Mk(e.rel, e.kind); err != nil {
			return err
		}
	}

	return nil
}

// --- Private api ---

type manifestEntry struct {
	rel  string
	kind FileKind
}

// kindSpec is the object form of a manifest value. Exactly one field
// must be set.
type kindSpec struct {
	Zero    *int64  `json:"zero"`
	Random  *int64  `json:"random"`
	Content *string `json:"content"`
}

func parseManifest(manifest []byte) ([]manifestEntry, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(manifest)
	if err != nil {
		return nil, fmt.Errorf("manifest: invalid JSONC: %w", err)
	}

	var raw map[string]json.RawMessage

	if err := json.Unmarshal(standardized, &raw); err != nil {
		return nil, fmt.Errorf("manifest: invalid JSON: %w", err)
	}

	entries := make([]manifestEntry, 0, len(raw))

	for rel, msg := range raw {
		kind, err := parseKind(msg)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %q: %w", rel, err)
		}

		entries = append(entries, manifestEntry{rel: rel, kind: kind})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	return entries, nil
}

func parseKind(msg json.RawMessage) (FileKind, error) {
	var name string
	if err := json.Unmarshal(msg, &name); err == nil {
		switch name {
		case "dir":
			return Dir(), nil
		case "empty":
			return EmptyFile(), nil
		default:
			return FileKind{}, fmt.Errorf("unknown kind %q", name)
		}
	}

	var spec kindSpec

	if err := json.Unmarshal(msg, &spec); err != nil {
		return FileKind{}, fmt.Errorf("invalid kind spec: %w", err)
	}

	switch {
	case spec.Zero != nil:
		return ZeroFile(*spec.Zero), nil
	case spec.Random != nil:
		return RandomFile(*spec.Random), nil
	case spec.Content != nil:
		return FileContent([]byte(*spec.Content)), nil
	default:
		return FileKind{}, errors.New(`kind spec needs one of "zero", "random", "content"`)
	}
}
